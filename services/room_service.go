package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"koja_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RoomService layers per-user chat room preferences on top of matches.
// Preferences never alter match state; the one exception, LeaveRoom,
// delegates to the match engine because leaving and unmatching are the
// same operation in this product.
type RoomService struct {
	Store Store
	Match *MatchService
}

// GetRoomSettings returns the stored settings for (userID, matchID), or
// the defaults {pinned:false, alertsEnabled:true} when none exist.
func (s *RoomService) GetRoomSettings(ctx context.Context, userID, matchID string) (models.RoomSettings, error) {
	item, err := s.Store.GetItem(ctx, models.RoomSettingsTable, roomKeyAttr(userID, matchID))
	if errors.Is(err, ErrItemNotFound) {
		return models.DefaultRoomSettings(userID, matchID), nil
	}
	if err != nil {
		return models.DefaultRoomSettings(userID, matchID), err
	}

	var settings models.RoomSettings
	if err := attributevalue.UnmarshalMap(item, &settings); err != nil {
		return models.DefaultRoomSettings(userID, matchID), fmt.Errorf("failed to unmarshal room settings: %w", err)
	}
	return settings, nil
}

// GetAllRoomSettings returns every stored setting for the user keyed by
// matchId. Rooms without a stored item are simply absent; callers apply
// defaults.
func (s *RoomService) GetAllRoomSettings(ctx context.Context, userID string) (map[string]models.RoomSettings, error) {
	items, err := s.Store.QueryItems(ctx, models.RoomSettingsTable,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		}, nil, 1000,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room settings: %w", err)
	}

	var list []models.RoomSettings
	if err := attributevalue.UnmarshalListOfMaps(items, &list); err != nil {
		return nil, fmt.Errorf("failed to parse room settings: %w", err)
	}

	settings := make(map[string]models.RoomSettings, len(list))
	for _, entry := range list {
		settings[entry.MatchID] = entry
	}
	return settings, nil
}

// PinRoom pins the room, creating the settings item with defaults when absent.
func (s *RoomService) PinRoom(ctx context.Context, userID, matchID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.Store.GetItem(ctx, models.RoomSettingsTable, roomKeyAttr(userID, matchID))
	if errors.Is(err, ErrItemNotFound) {
		settings := models.DefaultRoomSettings(userID, matchID)
		settings.Pinned = true
		settings.PinnedAt = now
		return s.Store.PutItem(ctx, models.RoomSettingsTable, settings)
	}
	if err != nil {
		return err
	}

	_, err = s.Store.UpdateItem(ctx, models.RoomSettingsTable,
		"SET pinned = :pinned, pinnedAt = :at",
		roomKeyAttr(userID, matchID),
		map[string]types.AttributeValue{
			":pinned": &types.AttributeValueMemberBOOL{Value: true},
			":at":     &types.AttributeValueMemberS{Value: now},
		}, nil,
	)
	return err
}

// UnpinRoom clears the pin. A room that was never pinned has no settings
// item and nothing to do.
func (s *RoomService) UnpinRoom(ctx context.Context, userID, matchID string) error {
	_, err := s.Store.GetItem(ctx, models.RoomSettingsTable, roomKeyAttr(userID, matchID))
	if errors.Is(err, ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.Store.UpdateItem(ctx, models.RoomSettingsTable,
		"SET pinned = :pinned REMOVE pinnedAt",
		roomKeyAttr(userID, matchID),
		map[string]types.AttributeValue{
			":pinned": &types.AttributeValueMemberBOOL{Value: false},
		}, nil,
	)
	return err
}

// ToggleRoomAlert flips the mute flag, creating the item with defaults when absent.
func (s *RoomService) ToggleRoomAlert(ctx context.Context, userID, matchID string, enabled bool) error {
	_, err := s.Store.GetItem(ctx, models.RoomSettingsTable, roomKeyAttr(userID, matchID))
	if errors.Is(err, ErrItemNotFound) {
		settings := models.DefaultRoomSettings(userID, matchID)
		settings.AlertsEnabled = enabled
		return s.Store.PutItem(ctx, models.RoomSettingsTable, settings)
	}
	if err != nil {
		return err
	}

	_, err = s.Store.UpdateItem(ctx, models.RoomSettingsTable,
		"SET alertsEnabled = :enabled",
		roomKeyAttr(userID, matchID),
		map[string]types.AttributeValue{
			":enabled": &types.AttributeValueMemberBOOL{Value: enabled},
		}, nil,
	)
	return err
}

// LeaveRoom ends the chat for both sides. There is no one-sided hide.
func (s *RoomService) LeaveRoom(ctx context.Context, matchID string) error {
	return s.Match.Unmatch(ctx, matchID)
}

// SortMatches orders a user's match list for display: pinned rooms first
// (stable among themselves), the rest by most recent message, with rooms
// that never had a message last.
func (s *RoomService) SortMatches(matches []models.Match, settings map[string]models.RoomSettings) []models.Match {
	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi := settings[sorted[i].MatchID].Pinned
		pj := settings[sorted[j].MatchID].Pinned
		if pi != pj {
			return pi
		}
		return sorted[i].LastMessageAt > sorted[j].LastMessageAt
	})
	return sorted
}

func roomKeyAttr(userID, matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: userID},
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
}

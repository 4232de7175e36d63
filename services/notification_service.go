package services

import (
	"context"
	"errors"
	"fmt"

	"koja_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// NotificationSettingsPatch carries a partial update; nil fields are left
// unchanged.
type NotificationSettingsPatch struct {
	Matching    *bool `json:"matching,omitempty"`
	Messages    *bool `json:"messages,omitempty"`
	Likes       *bool `json:"likes,omitempty"`
	PushEnabled *bool `json:"pushEnabled,omitempty"`
}

// NotificationService stores per-user notification preferences. Browser
// permission handling lives in the client; this side only keeps the flags.
type NotificationService struct {
	Store Store
}

// GetNotificationSettings returns the user's preferences, or the defaults
// when nothing is stored. Soft read: storage trouble also yields defaults.
func (s *NotificationService) GetNotificationSettings(ctx context.Context, userID string) models.NotificationSettings {
	item, err := s.Store.GetItem(ctx, models.NotificationSettingsTable, userKeyAttr(userID))
	if err != nil {
		return models.DefaultNotificationSettings(userID)
	}

	var settings models.NotificationSettings
	if err := attributevalue.UnmarshalMap(item, &settings); err != nil {
		return models.DefaultNotificationSettings(userID)
	}
	settings.UserID = userID
	return settings
}

// UpdateNotificationSettings merges the patch over the stored settings
// (or the defaults) and writes the result back.
func (s *NotificationService) UpdateNotificationSettings(ctx context.Context, userID string, patch NotificationSettingsPatch) (models.NotificationSettings, error) {
	settings := s.GetNotificationSettings(ctx, userID)

	if patch.Matching != nil {
		settings.Matching = *patch.Matching
	}
	if patch.Messages != nil {
		settings.Messages = *patch.Messages
	}
	if patch.Likes != nil {
		settings.Likes = *patch.Likes
	}
	if patch.PushEnabled != nil {
		settings.PushEnabled = *patch.PushEnabled
	}

	if err := s.Store.PutItem(ctx, models.NotificationSettingsTable, settings); err != nil {
		return settings, fmt.Errorf("failed to update notification settings: %w", err)
	}
	return settings, nil
}

// SubscribeToPush enables push delivery for the user.
func (s *NotificationService) SubscribeToPush(ctx context.Context, userID string) error {
	enabled := true
	_, err := s.UpdateNotificationSettings(ctx, userID, NotificationSettingsPatch{PushEnabled: &enabled})
	return err
}

// UnsubscribeFromPush disables push delivery for the user.
func (s *NotificationService) UnsubscribeFromPush(ctx context.Context, userID string) error {
	disabled := false
	_, err := s.UpdateNotificationSettings(ctx, userID, NotificationSettingsPatch{PushEnabled: &disabled})
	return err
}

// IsNotificationTypeEnabled reports whether a notification of the given
// type ("matching", "messages" or "likes") should be delivered.
func (s *NotificationService) IsNotificationTypeEnabled(ctx context.Context, userID, notificationType string) (bool, error) {
	settings := s.GetNotificationSettings(ctx, userID)
	if !settings.PushEnabled {
		return false, nil
	}
	switch notificationType {
	case "matching":
		return settings.Matching, nil
	case "messages":
		return settings.Messages, nil
	case "likes":
		return settings.Likes, nil
	default:
		return false, errors.New("unknown notification type: " + notificationType)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"koja_server/models"
	"koja_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ErrInvalidReportCategory is returned when a report uses an unknown category.
var ErrInvalidReportCategory = errors.New("invalid report category")

// SafetyService owns block-list membership and moderation tickets.
type SafetyService struct {
	Store Store
}

// BlockUser adds blockedUserID to the blocker's set. Idempotent: blocking
// twice is a no-op at the storage level.
func (s *SafetyService) BlockUser(ctx context.Context, userID, blockedUserID string) error {
	_, err := s.Store.UpdateItem(ctx, models.UserProfilesTable,
		"ADD blockedUsers :blocked",
		userKeyAttr(userID),
		map[string]types.AttributeValue{
			":blocked": &types.AttributeValueMemberSS{Value: []string{blockedUserID}},
		}, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}

// UnblockUser removes blockedUserID from the blocker's set. Idempotent.
func (s *SafetyService) UnblockUser(ctx context.Context, userID, blockedUserID string) error {
	_, err := s.Store.UpdateItem(ctx, models.UserProfilesTable,
		"DELETE blockedUsers :blocked",
		userKeyAttr(userID),
		map[string]types.AttributeValue{
			":blocked": &types.AttributeValueMemberSS{Value: []string{blockedUserID}},
		}, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to unblock user: %w", err)
	}
	return nil
}

// IsBlocked reports whether userID has blocked targetUserID. A missing
// profile reads as "not blocked".
func (s *SafetyService) IsBlocked(ctx context.Context, userID, targetUserID string) (bool, error) {
	blocked, err := s.GetBlockedUsers(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, b := range blocked {
		if b == targetUserID {
			return true, nil
		}
	}
	return false, nil
}

// IsEitherBlocked reports whether either user has blocked the other. The
// two directional checks run concurrently.
func (s *SafetyService) IsEitherBlocked(ctx context.Context, userID1, userID2 string) (bool, error) {
	type result struct {
		blocked bool
		err     error
	}
	other := make(chan result, 1)
	go func() {
		blocked, err := s.IsBlocked(ctx, userID2, userID1)
		other <- result{blocked, err}
	}()

	blocked1, err1 := s.IsBlocked(ctx, userID1, userID2)
	r := <-other
	if err1 != nil {
		return false, err1
	}
	if r.err != nil {
		return false, r.err
	}
	return blocked1 || r.blocked, nil
}

// GetBlockedUsers returns the blocker's set, empty for a missing profile.
// Discovery uses this to filter candidates before they are ever shown.
func (s *SafetyService) GetBlockedUsers(ctx context.Context, userID string) ([]string, error) {
	item, err := s.Store.GetItem(ctx, models.UserProfilesTable, userKeyAttr(userID))
	if errors.Is(err, ErrItemNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	blocked := utils.ExtractStringSet(item, "blockedUsers")
	if blocked == nil {
		return []string{}, nil
	}
	return blocked, nil
}

// ReportUser creates a moderation ticket with status "pending". Only the
// category is validated here; everything else is moderation's problem.
func (s *SafetyService) ReportUser(ctx context.Context, reporterID, reportedUserID, category, description, contextType, contextID string) (string, error) {
	if !models.IsValidReportCategory(category) {
		return "", ErrInvalidReportCategory
	}

	report := models.Report{
		ReportID:       uuid.NewString(),
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Category:       category,
		Description:    description,
		ContextType:    contextType,
		ContextID:      contextID,
		Status:         models.ReportStatusPending,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Store.PutItem(ctx, models.ReportsTable, report); err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	return report.ReportID, nil
}

func userKeyAttr(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

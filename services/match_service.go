package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"koja_server/models"
	"koja_server/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrSelfLike is returned when a user tries to like themselves.
var ErrSelfLike = errors.New("cannot like yourself")

// ErrMatchNotFound is returned by Unmatch for an unknown matchId.
var ErrMatchNotFound = errors.New("match not found")

// LikeResult is the outcome of recording a like.
type LikeResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"matchId,omitempty"`
}

// MatchService records likes, detects mutual likes and owns the match
// lifecycle.
type MatchService struct {
	Store Store
	Likes *LikeCache // optional, best-effort badge counters
}

// CreateLike records a like from fromUserID to toUserID and creates the
// match when the like is reciprocated.
//
// The like is written first and the reverse like is read second, with a
// strongly consistent read: with two users liking each other concurrently,
// at least one of them then observes the other's committed like. A default
// read can lag behind that commit and would let both sides miss each other.
// Match creation itself is a conditional put on the deterministic
// sorted-pair key inside a write transaction, so concurrent creation
// attempts address the same item and exactly one can ever succeed; the
// loser reports the same matchId.
//
// Re-liking is a harmless overwrite of the same like item, never an error.
func (s *MatchService) CreateLike(ctx context.Context, fromUserID, toUserID string) (*LikeResult, error) {
	if fromUserID == toUserID {
		return nil, ErrSelfLike
	}

	// Remember whether the forward like already existed so a repeated
	// one-directional like does not inflate the badge counter below.
	// Consistent read: the liker's own earlier like must be visible.
	alreadyLiked := true
	_, err := s.Store.GetItemConsistent(ctx, models.LikesTable, likeKeyAttr(models.LikeKey(fromUserID, toUserID)))
	if errors.Is(err, ErrItemNotFound) {
		alreadyLiked = false
	} else if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	like := models.Like{
		LikeID:     models.LikeKey(fromUserID, toUserID),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		CreatedAt:  now,
	}
	if err := s.Store.PutItem(ctx, models.LikesTable, like); err != nil {
		return nil, fmt.Errorf("failed to record like: %w", err)
	}

	reverseKey := models.LikeKey(toUserID, fromUserID)
	_, err = s.Store.GetItemConsistent(ctx, models.LikesTable, likeKeyAttr(reverseKey))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			// One-directional like: bump the recipient's badge counter,
			// once per distinct liker.
			if s.Likes != nil && !alreadyLiked {
				if cerr := s.Likes.IncrNewLikes(ctx, toUserID); cerr != nil {
					log.Printf("like counter update failed for %s: %v", toUserID, cerr)
				}
			}
			return &LikeResult{Matched: false}, nil
		}
		return nil, fmt.Errorf("failed to check reverse like: %w", err)
	}

	matchID := models.MatchKey(fromUserID, toUserID)
	if err := s.createMatchOnce(ctx, matchID, fromUserID, toUserID, reverseKey, now); err != nil {
		return nil, err
	}

	if s.Likes != nil {
		for _, u := range []string{fromUserID, toUserID} {
			if cerr := s.Likes.ClearNewLikes(ctx, u); cerr != nil {
				log.Printf("like counter reset failed for %s: %v", u, cerr)
			}
		}
	}

	return &LikeResult{Matched: true, MatchID: matchID}, nil
}

// createMatchOnce creates the match item if it does not exist yet. An
// already-existing match (either side raced us, or the pair matched and
// later unmatched) is success: the caller reports the same matchId.
func (s *MatchService) createMatchOnce(ctx context.Context, matchID, fromUserID, toUserID, reverseLikeKey, now string) error {
	match := models.Match{
		MatchID:   matchID,
		Users:     models.SortedUsers(fromUserID, toUserID),
		CreatedAt: now,
		Active:    true,
	}
	matchItem, err := attributevalue.MarshalMap(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	err = s.Store.TransactWriteItems(ctx, []types.TransactWriteItem{
		{
			ConditionCheck: &types.ConditionCheck{
				TableName:           aws.String(models.LikesTable),
				Key:                 likeKeyAttr(reverseLikeKey),
				ConditionExpression: aws.String("attribute_exists(likeId)"),
			},
		},
		{
			Put: &types.Put{
				TableName:           aws.String(models.MatchesTable),
				Item:                matchItem,
				ConditionExpression: aws.String("attribute_not_exists(matchId)"),
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) && matchAlreadyExists(canceled) {
			return nil
		}
		return fmt.Errorf("failed to create match %s: %w", matchID, err)
	}

	log.Printf("It's a match: %s", matchID)
	return nil
}

// matchAlreadyExists reports whether the only failed transaction item was
// the conditional match put. Likes are never deleted, so the reverse-like
// condition check cannot legitimately fail.
func matchAlreadyExists(canceled *types.TransactionCanceledException) bool {
	if len(canceled.CancellationReasons) != 2 {
		return false
	}
	likeReason := canceled.CancellationReasons[0]
	matchReason := canceled.CancellationReasons[1]
	if likeReason.Code != nil && *likeReason.Code == "ConditionalCheckFailed" {
		return false
	}
	return matchReason.Code != nil && *matchReason.Code == "ConditionalCheckFailed"
}

// HasLiked reports whether a directional like exists.
func (s *MatchService) HasLiked(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	_, err := s.Store.GetItem(ctx, models.LikesTable, likeKeyAttr(models.LikeKey(fromUserID, toUserID)))
	if errors.Is(err, ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CheckMutualLike reports whether both directional likes exist. Diagnostic
// read; CreateLike re-derives the condition under its own write path.
func (s *MatchService) CheckMutualLike(ctx context.Context, userID1, userID2 string) (bool, error) {
	type result struct {
		liked bool
		err   error
	}
	forward := make(chan result, 1)
	go func() {
		liked, err := s.HasLiked(ctx, userID1, userID2)
		forward <- result{liked, err}
	}()

	reverseLiked, err := s.HasLiked(ctx, userID2, userID1)
	f := <-forward
	if f.err != nil {
		return false, f.err
	}
	if err != nil {
		return false, err
	}
	return f.liked && reverseLiked, nil
}

// GetMatch retrieves a match by ID, returning (nil, nil) when it does not exist.
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := s.Store.GetItem(ctx, models.MatchesTable, matchKeyAttr(matchID))
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

// GetMatches returns all active matches containing userID, most recent
// message first. Matches that never had a message sort oldest.
func (s *MatchService) GetMatches(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.Store.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		if !utils.ExtractBool(item, "active") {
			return false
		}
		for _, u := range utils.ExtractStringList(item, "users") {
			if u == userID {
				return true
			}
		}
		return false
	}, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	// RFC3339 timestamps compare lexicographically; "" sorts last.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].LastMessageAt > matches[j].LastMessageAt
	})
	return matches, nil
}

// GetOtherUserID returns the participant of the match that is not currentUserID.
func (s *MatchService) GetOtherUserID(match *models.Match, currentUserID string) string {
	return match.OtherUserID(currentUserID)
}

// Unmatch deactivates a match. Irreversible: there is no rematch.
func (s *MatchService) Unmatch(ctx context.Context, matchID string) error {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if match == nil {
		return ErrMatchNotFound
	}

	_, err = s.Store.UpdateItem(ctx, models.MatchesTable,
		"SET active = :inactive, unmatchedAt = :now",
		matchKeyAttr(matchID),
		map[string]types.AttributeValue{
			":inactive": &types.AttributeValueMemberBOOL{Value: false},
			":now":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		}, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to unmatch %s: %w", matchID, err)
	}
	return nil
}

// GetNewLikeCount returns the badge counter for likes received since the
// user last matched. Zero when the cache is unavailable.
func (s *MatchService) GetNewLikeCount(ctx context.Context, userID string) int64 {
	if s.Likes == nil {
		return 0
	}
	count, err := s.Likes.GetNewLikes(ctx, userID)
	if err != nil {
		log.Printf("like counter read failed for %s: %v", userID, err)
		return 0
	}
	return count
}

func likeKeyAttr(likeID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"likeId": &types.AttributeValueMemberS{Value: likeID},
	}
}

func matchKeyAttr(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
}

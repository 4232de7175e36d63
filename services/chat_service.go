package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"koja_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// previewLength bounds the match-list message preview, counted in runes so
// Korean and Japanese text is never cut mid-character.
const previewLength = 50

// defaultMessageLimit applies when a caller passes no limit.
const defaultMessageLimit = 1000

// ErrChatNotAccessible is returned when a send is attempted on a chat the
// sender may not use: unknown match, non-participant, inactive match, or a
// blocked pair.
var ErrChatNotAccessible = errors.New("chat is not accessible")

// Broadcaster pushes new-message events to connected clients. Implemented
// by the Socket.IO server; nil disables cross-client fan-out.
type Broadcaster interface {
	BroadcastNewMessage(matchID string, message interface{})
}

// ChatService is the gateway for everything message-shaped: access gating,
// sends, reads, read-marking and realtime subscriptions.
type ChatService struct {
	Store     Store
	Match     *MatchService
	Safety    *SafetyService
	Hub       *ChatHub
	Broadcast Broadcaster
}

// IsChatAccessible reports whether userID may use the chat of matchID:
// the match must exist, the user must be a participant, and the match must
// still be active. Soft check, never errors on absence.
func (s *ChatService) IsChatAccessible(ctx context.Context, matchID, userID string) bool {
	match, err := s.Match.GetMatch(ctx, matchID)
	if err != nil {
		log.Printf("access check failed for match %s: %v", matchID, err)
		return false
	}
	if match == nil {
		return false
	}
	if !match.HasUser(userID) {
		return false
	}
	return match.Active
}

// SendMessage appends a message and updates the parent match's preview.
//
// The append and the preview update are two independent writes: a crash in
// between leaves the preview stale relative to the message stream. The
// preview is a best-effort cache, so that window is accepted.
func (s *ChatService) SendMessage(ctx context.Context, matchID, senderID, text, imageURL string) (string, error) {
	match, err := s.Match.GetMatch(ctx, matchID)
	if err != nil {
		return "", err
	}
	if match == nil || !match.HasUser(senderID) || !match.Active {
		return "", ErrChatNotAccessible
	}

	// Blocking normally closes the chat through unmatch; this re-check
	// covers the window where the match is still active.
	blocked, err := s.Safety.IsEitherBlocked(ctx, match.Users[0], match.Users[1])
	if err != nil {
		return "", err
	}
	if blocked {
		return "", ErrChatNotAccessible
	}

	message := models.Message{
		MatchID:   matchID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		ImageURL:  imageURL,
		Read:      false,
	}
	if err := s.Store.PutItem(ctx, models.MessagesTable, message); err != nil {
		return "", fmt.Errorf("failed to store message: %w", err)
	}

	_, err = s.Store.UpdateItem(ctx, models.MatchesTable,
		"SET lastMessage = :preview, lastMessageAt = :at",
		matchKeyAttr(matchID),
		map[string]types.AttributeValue{
			":preview": &types.AttributeValueMemberS{Value: truncatePreview(text)},
			":at":      &types.AttributeValueMemberS{Value: message.CreatedAt},
		}, nil,
	)
	if err != nil {
		return "", fmt.Errorf("failed to update match preview: %w", err)
	}

	s.notifySubscribers(ctx, matchID, message)
	return message.MessageID, nil
}

// notifySubscribers delivers the fresh ordered snapshot to in-process
// subscribers and fans the single message out to connected sockets.
func (s *ChatService) notifySubscribers(ctx context.Context, matchID string, message models.Message) {
	if s.Hub != nil {
		snapshot, err := s.GetMessages(ctx, matchID, 0)
		if err != nil {
			log.Printf("snapshot read failed for match %s: %v", matchID, err)
		} else {
			s.Hub.Publish(matchID, snapshot)
		}
	}
	if s.Broadcast != nil {
		s.Broadcast.BroadcastNewMessage(matchID, message)
	}
}

// GetMessages fetches messages for a match ordered oldest first.
func (s *ChatService) GetMessages(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	items, err := s.Store.QueryItemsWithOptions(ctx, models.MessagesTable,
		"#matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		map[string]string{"#matchId": "matchId"},
		int32(limit), false,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

// SubscribeToMessages registers a callback invoked with the full ordered
// message list after every completed send. The returned func cancels the
// subscription.
func (s *ChatService) SubscribeToMessages(matchID string, onChange func([]models.Message)) func() {
	return s.Hub.Subscribe(matchID, onChange)
}

// MarkMessageAsRead marks a single message, addressed by its createdAt
// timestamp within the match.
func (s *ChatService) MarkMessageAsRead(ctx context.Context, matchID, createdAt string) error {
	_, err := s.Store.UpdateItem(ctx, models.MessagesTable,
		"SET #read = :read",
		messageKeyAttr(matchID, createdAt),
		map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberBOOL{Value: true},
		},
		map[string]string{"#read": "read"},
	)
	if err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks every unread message the user received in the match.
func (s *ChatService) MarkAllAsRead(ctx context.Context, matchID, userID string) error {
	messages, err := s.GetMessages(ctx, matchID, 0)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if msg.SenderID == userID || msg.Read {
			continue
		}
		if err := s.MarkMessageAsRead(ctx, matchID, msg.CreatedAt); err != nil {
			log.Printf("failed to mark message %s as read: %v", msg.MessageID, err)
		}
	}
	return nil
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength])
}

func messageKeyAttr(matchID, createdAt string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId":   &types.AttributeValueMemberS{Value: matchID},
		"createdAt": &types.AttributeValueMemberS{Value: createdAt},
	}
}

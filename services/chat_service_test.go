package services

import (
	"context"
	"strings"
	"testing"

	"koja_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBroadcaster captures socket fan-out calls.
type recordingBroadcaster struct {
	rooms    []string
	messages []interface{}
}

func (r *recordingBroadcaster) BroadcastNewMessage(matchID string, message interface{}) {
	r.rooms = append(r.rooms, matchID)
	r.messages = append(r.messages, message)
}

func newChatService(t *testing.T) (*ChatService, *recordingBroadcaster) {
	t.Helper()
	store := newFakeStore()
	match := &MatchService{Store: store}
	safety := &SafetyService{Store: store}
	broadcast := &recordingBroadcaster{}
	chat := &ChatService{
		Store:     store,
		Match:     match,
		Safety:    safety,
		Hub:       NewChatHub(),
		Broadcast: broadcast,
	}
	return chat, broadcast
}

func makeMatch(t *testing.T, svc *MatchService, user1, user2 string) string {
	t.Helper()
	ctx := context.Background()
	_, err := svc.CreateLike(ctx, user1, user2)
	require.NoError(t, err)
	result, err := svc.CreateLike(ctx, user2, user1)
	require.NoError(t, err)
	require.True(t, result.Matched)
	return result.MatchID
}

func TestIsChatAccessible(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")

	assert.True(t, chat.IsChatAccessible(ctx, matchID, "alice"))
	assert.True(t, chat.IsChatAccessible(ctx, matchID, "bob"))

	// non-participant
	assert.False(t, chat.IsChatAccessible(ctx, matchID, "mallory"))
	// nonexistent match
	assert.False(t, chat.IsChatAccessible(ctx, "ghost_pair", "alice"))

	// inactive match
	require.NoError(t, chat.Match.Unmatch(ctx, matchID))
	assert.False(t, chat.IsChatAccessible(ctx, matchID, "alice"))
}

func TestSendMessage(t *testing.T) {
	chat, broadcast := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")

	messageID, err := chat.SendMessage(ctx, matchID, "alice", "안녕하세요!", "")
	require.NoError(t, err)
	assert.NotEmpty(t, messageID)

	messages, err := chat.GetMessages(ctx, matchID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "alice", messages[0].SenderID)
	assert.Equal(t, "안녕하세요!", messages[0].Text)
	assert.False(t, messages[0].Read)
	assert.NotEmpty(t, messages[0].CreatedAt)

	// match preview follows the message
	match, err := chat.Match.GetMatch(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, "안녕하세요!", match.LastMessage)
	assert.Equal(t, messages[0].CreatedAt, match.LastMessageAt)

	// socket fan-out got the single message
	require.Len(t, broadcast.rooms, 1)
	assert.Equal(t, matchID, broadcast.rooms[0])
	sent, ok := broadcast.messages[0].(models.Message)
	require.True(t, ok)
	assert.Equal(t, messageID, sent.MessageID)
}

func TestSendMessage_GatedByAccess(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")

	_, err := chat.SendMessage(ctx, matchID, "mallory", "hi", "")
	assert.ErrorIs(t, err, ErrChatNotAccessible)

	_, err = chat.SendMessage(ctx, "ghost_pair", "alice", "hi", "")
	assert.ErrorIs(t, err, ErrChatNotAccessible)

	require.NoError(t, chat.Match.Unmatch(ctx, matchID))
	_, err = chat.SendMessage(ctx, matchID, "alice", "hi", "")
	assert.ErrorIs(t, err, ErrChatNotAccessible)
}

func TestSendMessage_BlockedPairRejected(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")

	// match still active but bob has blocked alice
	require.NoError(t, chat.Safety.BlockUser(ctx, "bob", "alice"))

	_, err := chat.SendMessage(ctx, matchID, "alice", "hi", "")
	assert.ErrorIs(t, err, ErrChatNotAccessible)
	_, err = chat.SendMessage(ctx, matchID, "bob", "hi", "")
	assert.ErrorIs(t, err, ErrChatNotAccessible)
}

func TestSendMessage_PreviewTruncatedByRunes(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")

	long := strings.Repeat("루", 60)
	_, err := chat.SendMessage(ctx, matchID, "alice", long, "")
	require.NoError(t, err)

	match, err := chat.Match.GetMatch(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("루", 50), match.LastMessage)
}

func TestGetMessages_OrderedOldestFirst(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		_, err := chat.SendMessage(ctx, matchID, "alice", text, "")
		require.NoError(t, err)
	}

	messages, err := chat.GetMessages(ctx, matchID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i, text := range texts {
		assert.Equal(t, text, messages[i].Text)
	}

	limited, err := chat.GetMessages(ctx, matchID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "first", limited[0].Text)
}

func TestSubscribeToMessages(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")

	var snapshots [][]models.Message
	cancel := chat.SubscribeToMessages(matchID, func(messages []models.Message) {
		snapshots = append(snapshots, messages)
	})

	_, err := chat.SendMessage(ctx, matchID, "alice", "Hi", "")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	require.Len(t, snapshots[0], 1)
	assert.Equal(t, "Hi", snapshots[0][0].Text)

	_, err = chat.SendMessage(ctx, matchID, "bob", "Hey", "")
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 2)

	// after cancel no further snapshots arrive
	cancel()
	_, err = chat.SendMessage(ctx, matchID, "alice", "Still there?", "")
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
}

func TestMarkMessageAsRead(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")
	_, err := chat.SendMessage(ctx, matchID, "alice", "Hi", "")
	require.NoError(t, err)

	messages, err := chat.GetMessages(ctx, matchID, 0)
	require.NoError(t, err)
	require.False(t, messages[0].Read)

	require.NoError(t, chat.MarkMessageAsRead(ctx, matchID, messages[0].CreatedAt))

	messages, err = chat.GetMessages(ctx, matchID, 0)
	require.NoError(t, err)
	assert.True(t, messages[0].Read)
}

func TestMarkAllAsRead_SkipsOwnMessages(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	matchID := makeMatch(t, chat.Match, "alice", "bob")
	_, err := chat.SendMessage(ctx, matchID, "alice", "one", "")
	require.NoError(t, err)
	_, err = chat.SendMessage(ctx, matchID, "bob", "two", "")
	require.NoError(t, err)
	_, err = chat.SendMessage(ctx, matchID, "alice", "three", "")
	require.NoError(t, err)

	// bob marks everything he received
	require.NoError(t, chat.MarkAllAsRead(ctx, matchID, "bob"))

	messages, err := chat.GetMessages(ctx, matchID, 0)
	require.NoError(t, err)
	for _, msg := range messages {
		if msg.SenderID == "bob" {
			assert.False(t, msg.Read, "own message must stay unread: %s", msg.Text)
		} else {
			assert.True(t, msg.Read, "received message must be read: %s", msg.Text)
		}
	}
}

// End to end: like, match, chat, block.
func TestChatLifecycle(t *testing.T) {
	chat, _ := newChatService(t)
	ctx := context.Background()

	result, err := chat.Match.CreateLike(ctx, "A", "B")
	require.NoError(t, err)
	assert.False(t, result.Matched)

	result, err = chat.Match.CreateLike(ctx, "B", "A")
	require.NoError(t, err)
	require.True(t, result.Matched)
	matchID := result.MatchID
	assert.Equal(t, "A_B", matchID)

	var received []models.Message
	cancel := chat.SubscribeToMessages(matchID, func(messages []models.Message) {
		received = messages
	})
	defer cancel()

	_, err = chat.SendMessage(ctx, matchID, "A", "Hi", "")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "Hi", received[0].Text)
	assert.Equal(t, "A", received[0].SenderID)

	match, err := chat.Match.GetMatch(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", match.LastMessage)

	// B blocks A; block plus unmatch closes the room for both
	require.NoError(t, chat.Safety.BlockUser(ctx, "B", "A"))
	require.NoError(t, chat.Match.Unmatch(ctx, matchID))

	assert.False(t, chat.IsChatAccessible(ctx, matchID, "A"))
	assert.False(t, chat.IsChatAccessible(ctx, matchID, "B"))
	_, err = chat.SendMessage(ctx, matchID, "A", "hello?", "")
	assert.ErrorIs(t, err, ErrChatNotAccessible)
}

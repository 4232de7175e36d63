package models

import "sort"

// Match is a confirmed mutual-like relationship and the root of a chat.
// The matchId is the sorted user pair joined by "_", so both sides of a
// mutual like address the same item no matter who triggered the match.
type Match struct {
	MatchID       string   `dynamodbav:"matchId" json:"matchId"` // ✅ Partition Key: sorted pair
	Users         []string `dynamodbav:"users" json:"users"`     // Exactly two user IDs, stored sorted
	CreatedAt     string   `dynamodbav:"createdAt" json:"createdAt"`
	Active        bool     `dynamodbav:"active" json:"active"`
	LastMessage   string   `dynamodbav:"lastMessage,omitempty" json:"lastMessage,omitempty"`     // Preview, best-effort mirror of the message stream
	LastMessageAt string   `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	UnmatchedAt   string   `dynamodbav:"unmatchedAt,omitempty" json:"unmatchedAt,omitempty"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// MatchKey builds the canonical match key for an unordered user pair.
func MatchKey(userID1, userID2 string) string {
	pair := []string{userID1, userID2}
	sort.Strings(pair)
	return pair[0] + "_" + pair[1]
}

// SortedUsers returns the pair in canonical stored order.
func SortedUsers(userID1, userID2 string) []string {
	pair := []string{userID1, userID2}
	sort.Strings(pair)
	return pair
}

// HasUser reports whether userID is one of the match participants.
func (m *Match) HasUser(userID string) bool {
	for _, u := range m.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// OtherUserID returns the participant that is not currentUserID,
// or "" if currentUserID is not part of the match.
func (m *Match) OtherUserID(currentUserID string) string {
	for _, u := range m.Users {
		if u != currentUserID {
			return u
		}
	}
	return ""
}

package models

// RoomSettings is a per-(user, match) chat room preference. Absence of the
// item means the defaults apply; it is never deleted when a match ends, the
// orphaned row is simply filtered out by the caller.
type RoomSettings struct {
	UserID        string `dynamodbav:"userId" json:"userId"`   // ✅ Partition Key
	MatchID       string `dynamodbav:"matchId" json:"matchId"` // ✅ Sort Key
	Pinned        bool   `dynamodbav:"pinned" json:"pinned"`
	AlertsEnabled bool   `dynamodbav:"alertsEnabled" json:"alertsEnabled"`
	PinnedAt      string `dynamodbav:"pinnedAt,omitempty" json:"pinnedAt,omitempty"`
}

// RoomSettingsTable is the DynamoDB table name for chat room preferences
const RoomSettingsTable = "RoomSettings"

// DefaultRoomSettings returns the settings implied by a missing item.
func DefaultRoomSettings(userID, matchID string) RoomSettings {
	return RoomSettings{
		UserID:        userID,
		MatchID:       matchID,
		Pinned:        false,
		AlertsEnabled: true,
	}
}

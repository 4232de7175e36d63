package models

// NotificationSettings holds a user's notification preferences. A missing
// item yields the defaults below.
type NotificationSettings struct {
	UserID      string `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	Matching    bool   `dynamodbav:"matching" json:"matching"`
	Messages    bool   `dynamodbav:"messages" json:"messages"`
	Likes       bool   `dynamodbav:"likes" json:"likes"`
	PushEnabled bool   `dynamodbav:"pushEnabled" json:"pushEnabled"`
}

// NotificationSettingsTable is the DynamoDB table name for notification preferences
const NotificationSettingsTable = "NotificationSettings"

// DefaultNotificationSettings returns the settings implied by a missing item.
func DefaultNotificationSettings(userID string) NotificationSettings {
	return NotificationSettings{
		UserID:      userID,
		Matching:    true,
		Messages:    true,
		Likes:       true,
		PushEnabled: false,
	}
}

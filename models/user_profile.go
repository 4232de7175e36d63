package models

// UserProfile defines the structure for user profiles. Only the fields this
// service touches are modelled; onboarding owns the rest of the document.
type UserProfile struct {
	UserID       string   `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	Name         string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Nationality  string   `dynamodbav:"nationality,omitempty" json:"nationality,omitempty"` // "ko" or "ja"
	BlockedUsers []string `dynamodbav:"blockedUsers,stringset,omitempty" json:"blockedUsers,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "Users"

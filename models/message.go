package models

type Message struct {
	MatchID        string `dynamodbav:"matchId" json:"matchId"`     // ✅ Partition Key
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"` // ✅ Sort Key, RFC3339Nano
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Text           string `dynamodbav:"text" json:"text"`
	ImageURL       string `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Read           bool   `dynamodbav:"read" json:"read"`
	TranslatedText string `dynamodbav:"-" json:"translatedText,omitempty"` // client-side only, never persisted
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"

package models

// Like records one-directional interest from one user to another.
// The likeId is deterministic, so re-liking overwrites the same item.
type Like struct {
	LikeID     string `dynamodbav:"likeId" json:"likeId"` // ✅ Partition Key: "from_to"
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId"`
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// LikesTable is the DynamoDB table name for likes
const LikesTable = "Likes"

// LikeKey builds the deterministic key for a directional like.
func LikeKey(fromUserID, toUserID string) string {
	return fromUserID + "_" + toUserID
}

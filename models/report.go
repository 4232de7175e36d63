package models

// Report is a moderation ticket. Status transitions happen in the
// moderation back office, not in this service.
type Report struct {
	ReportID       string `dynamodbav:"reportId" json:"reportId"` // ✅ Partition Key, uuid
	ReporterID     string `dynamodbav:"reporterId" json:"reporterId"`
	ReportedUserID string `dynamodbav:"reportedUserId" json:"reportedUserId"`
	Category       string `dynamodbav:"category" json:"category"`
	Description    string `dynamodbav:"description" json:"description"`
	ContextType    string `dynamodbav:"contextType" json:"contextType"`
	ContextID      string `dynamodbav:"contextId,omitempty" json:"contextId,omitempty"`
	Status         string `dynamodbav:"status" json:"status"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// ReportsTable is the DynamoDB table name for moderation reports
const ReportsTable = "Reports"

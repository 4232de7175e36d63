package models

// ✅ Report categories (fixed, exactly five values)
const (
	ReportCategorySpam          = "spam"
	ReportCategoryHarassment    = "harassment"
	ReportCategoryInappropriate = "inappropriate"
	ReportCategoryImpersonation = "impersonation"
	ReportCategoryOther         = "other"
)

// ReportCategories lists every accepted report category.
var ReportCategories = []string{
	ReportCategorySpam,
	ReportCategoryHarassment,
	ReportCategoryInappropriate,
	ReportCategoryImpersonation,
	ReportCategoryOther,
}

// IsValidReportCategory reports whether category is one of the five accepted values.
func IsValidReportCategory(category string) bool {
	for _, c := range ReportCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ✅ Report context types
const (
	ReportContextProfile = "profile"
	ReportContextChat    = "chat"
)

// ✅ Report statuses
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

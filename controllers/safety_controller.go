package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"koja_server/services"
)

// SafetyController handles HTTP requests for blocking and reporting
type SafetyController struct {
	SafetyService *services.SafetyService
	MatchService  *services.MatchService
}

// NewSafetyController creates a new SafetyController instance
func NewSafetyController(safetyService *services.SafetyService, matchService *services.MatchService) *SafetyController {
	return &SafetyController{SafetyService: safetyService, MatchService: matchService}
}

// HandleBlockUser blocks a user and, when a matchId accompanies the block,
// closes the pair's chat by unmatching.
func (sc *SafetyController) HandleBlockUser(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID        string `json:"userId"`
		BlockedUserID string `json:"blockedUserId"`
		MatchID       string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.BlockedUserID == "" {
		http.Error(w, `{"error": "userId and blockedUserId are required"}`, http.StatusBadRequest)
		return
	}

	if err := sc.SafetyService.BlockUser(r.Context(), request.UserID, request.BlockedUserID); err != nil {
		log.Printf("Error blocking user: %v", err)
		http.Error(w, `{"error": "Failed to block user"}`, http.StatusInternalServerError)
		return
	}

	if request.MatchID != "" {
		if err := sc.MatchService.Unmatch(r.Context(), request.MatchID); err != nil && !errors.Is(err, services.ErrMatchNotFound) {
			log.Printf("Error unmatching after block: %v", err)
			http.Error(w, `{"error": "Blocked but failed to close chat"}`, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleUnblockUser removes a user from the block list
func (sc *SafetyController) HandleUnblockUser(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID        string `json:"userId"`
		BlockedUserID string `json:"blockedUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.BlockedUserID == "" {
		http.Error(w, `{"error": "userId and blockedUserId are required"}`, http.StatusBadRequest)
		return
	}

	if err := sc.SafetyService.UnblockUser(r.Context(), request.UserID, request.BlockedUserID); err != nil {
		http.Error(w, `{"error": "Failed to unblock user"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleGetBlockedUsers returns the caller's block list
func (sc *SafetyController) HandleGetBlockedUsers(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	blocked, err := sc.SafetyService.GetBlockedUsers(r.Context(), userID)
	if err != nil {
		http.Error(w, `{"error": "Failed to fetch blocked users"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"blockedUsers": blocked})
}

// HandleReportUser creates a moderation ticket
func (sc *SafetyController) HandleReportUser(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ReporterID     string `json:"reporterId"`
		ReportedUserID string `json:"reportedUserId"`
		Category       string `json:"category"`
		Description    string `json:"description"`
		ContextType    string `json:"contextType"`
		ContextID      string `json:"contextId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ReporterID == "" || request.ReportedUserID == "" {
		http.Error(w, `{"error": "reporterId and reportedUserId are required"}`, http.StatusBadRequest)
		return
	}

	reportID, err := sc.SafetyService.ReportUser(r.Context(),
		request.ReporterID, request.ReportedUserID, request.Category,
		request.Description, request.ContextType, request.ContextID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReportCategory) {
			http.Error(w, `{"error": "Invalid report category"}`, http.StatusBadRequest)
			return
		}
		log.Printf("Error creating report: %v", err)
		http.Error(w, `{"error": "Failed to create report"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"reportId": reportID})
}

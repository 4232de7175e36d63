package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"koja_server/services"
)

// MatchController handles HTTP requests for likes and matches
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleCreateLike records a like and reports whether it produced a match
func (mc *MatchController) HandleCreateLike(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID string `json:"fromUserId"`
		ToUserID   string `json:"toUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.FromUserID == "" || request.ToUserID == "" {
		http.Error(w, `{"error": "fromUserId and toUserId are required"}`, http.StatusBadRequest)
		return
	}

	result, err := mc.MatchService.CreateLike(r.Context(), request.FromUserID, request.ToUserID)
	if err != nil {
		if errors.Is(err, services.ErrSelfLike) {
			http.Error(w, `{"error": "cannot like yourself"}`, http.StatusBadRequest)
			return
		}
		log.Printf("Error creating like: %v", err)
		http.Error(w, `{"error": "Failed to create like"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleCheckMutualLike reports whether both directional likes exist
func (mc *MatchController) HandleCheckMutualLike(w http.ResponseWriter, r *http.Request) {
	userID1 := r.URL.Query().Get("userId1")
	userID2 := r.URL.Query().Get("userId2")
	if userID1 == "" || userID2 == "" {
		http.Error(w, `{"error": "userId1 and userId2 are required"}`, http.StatusBadRequest)
		return
	}

	mutual, err := mc.MatchService.CheckMutualLike(r.Context(), userID1, userID2)
	if err != nil {
		http.Error(w, `{"error": "Failed to check mutual like"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"mutual": mutual})
}

// HandleGetMatches returns the user's active matches, most recent first
func (mc *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	matches, err := mc.MatchService.GetMatches(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching matches: %v", err)
		http.Error(w, `{"error": "Failed to fetch matches"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"matches": matches})
}

// HandleGetMatch returns a single match, or 404 when it does not exist
func (mc *MatchController) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	if matchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.GetMatch(r.Context(), matchID)
	if err != nil {
		http.Error(w, `{"error": "Failed to fetch match"}`, http.StatusInternalServerError)
		return
	}
	if match == nil {
		http.Error(w, `{"error": "Match not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(match)
}

// HandleUnmatch deactivates a match permanently
func (mc *MatchController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.Unmatch(r.Context(), request.MatchID); err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			http.Error(w, `{"error": "Match not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("Error unmatching %s: %v", request.MatchID, err)
		http.Error(w, `{"error": "Failed to unmatch"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleNewLikeCount returns the badge counter for likes received
func (mc *MatchController) HandleNewLikeCount(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	count := mc.MatchService.GetNewLikeCount(r.Context(), userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"count": count})
}

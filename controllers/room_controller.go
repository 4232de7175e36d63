package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"koja_server/services"
)

// RoomController handles HTTP requests for chat room preferences
type RoomController struct {
	RoomService *services.RoomService
}

// NewRoomController creates a new RoomController instance
func NewRoomController(roomService *services.RoomService) *RoomController {
	return &RoomController{RoomService: roomService}
}

// HandleGetSettings returns settings for one room, defaulted when absent
func (rc *RoomController) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	matchID := r.URL.Query().Get("matchId")
	if userID == "" || matchID == "" {
		http.Error(w, `{"error": "userId and matchId are required"}`, http.StatusBadRequest)
		return
	}

	settings, err := rc.RoomService.GetRoomSettings(r.Context(), userID, matchID)
	if err != nil {
		log.Printf("Error fetching room settings: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// HandleGetAllSettings returns every stored room setting for the user
func (rc *RoomController) HandleGetAllSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	settings, err := rc.RoomService.GetAllRoomSettings(r.Context(), userID)
	if err != nil {
		http.Error(w, `{"error": "Failed to fetch room settings"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// HandlePinRoom pins a chat room
func (rc *RoomController) HandlePinRoom(w http.ResponseWriter, r *http.Request) {
	rc.handlePinChange(w, r, true)
}

// HandleUnpinRoom unpins a chat room
func (rc *RoomController) HandleUnpinRoom(w http.ResponseWriter, r *http.Request) {
	rc.handlePinChange(w, r, false)
}

func (rc *RoomController) handlePinChange(w http.ResponseWriter, r *http.Request, pinned bool) {
	var request struct {
		UserID  string `json:"userId"`
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.MatchID == "" {
		http.Error(w, `{"error": "userId and matchId are required"}`, http.StatusBadRequest)
		return
	}

	var err error
	if pinned {
		err = rc.RoomService.PinRoom(r.Context(), request.UserID, request.MatchID)
	} else {
		err = rc.RoomService.UnpinRoom(r.Context(), request.UserID, request.MatchID)
	}
	if err != nil {
		log.Printf("Error updating pin state: %v", err)
		http.Error(w, `{"error": "Failed to update pin state"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleToggleAlerts flips the mute flag for a room
func (rc *RoomController) HandleToggleAlerts(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		MatchID string `json:"matchId"`
		Enabled bool   `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.MatchID == "" {
		http.Error(w, `{"error": "userId and matchId are required"}`, http.StatusBadRequest)
		return
	}

	if err := rc.RoomService.ToggleRoomAlert(r.Context(), request.UserID, request.MatchID, request.Enabled); err != nil {
		http.Error(w, `{"error": "Failed to update alerts"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleLeaveRoom ends the chat for both participants
func (rc *RoomController) HandleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	if err := rc.RoomService.LeaveRoom(r.Context(), request.MatchID); err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			http.Error(w, `{"error": "Match not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "Failed to leave room"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"koja_server/services"
)

// NotificationController handles HTTP requests for notification preferences
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: service}
}

// HandleGetSettings returns the user's notification preferences
func (nc *NotificationController) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	settings := nc.NotificationService.GetNotificationSettings(r.Context(), userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// HandleUpdateSettings applies a partial preferences update
func (nc *NotificationController) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
		services.NotificationSettingsPatch
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	settings, err := nc.NotificationService.UpdateNotificationSettings(r.Context(), request.UserID, request.NotificationSettingsPatch)
	if err != nil {
		log.Printf("Error updating notification settings: %v", err)
		http.Error(w, `{"error": "Failed to update settings"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// HandleSubscribePush enables push delivery
func (nc *NotificationController) HandleSubscribePush(w http.ResponseWriter, r *http.Request) {
	nc.handlePushChange(w, r, true)
}

// HandleUnsubscribePush disables push delivery
func (nc *NotificationController) HandleUnsubscribePush(w http.ResponseWriter, r *http.Request) {
	nc.handlePushChange(w, r, false)
}

func (nc *NotificationController) handlePushChange(w http.ResponseWriter, r *http.Request, enable bool) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	var err error
	if enable {
		err = nc.NotificationService.SubscribeToPush(r.Context(), request.UserID)
	} else {
		err = nc.NotificationService.UnsubscribeFromPush(r.Context(), request.UserID)
	}
	if err != nil {
		http.Error(w, `{"error": "Failed to update push subscription"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

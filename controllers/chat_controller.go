package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"koja_server/services"
)

// ChatController handles HTTP requests for messaging
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage appends a message to a chat
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID  string `json:"matchId"`
		SenderID string `json:"senderId"`
		Text     string `json:"text"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.SenderID == "" || (request.Text == "" && request.ImageURL == "") {
		http.Error(w, `{"error": "Missing required fields: matchId, senderId, text"}`, http.StatusBadRequest)
		return
	}

	messageID, err := c.ChatService.SendMessage(r.Context(), request.MatchID, request.SenderID, request.Text, request.ImageURL)
	if err != nil {
		if errors.Is(err, services.ErrChatNotAccessible) {
			http.Error(w, `{"error": "Chat is not accessible"}`, http.StatusForbidden)
			return
		}
		log.Printf("Failed to send message: %v", err)
		http.Error(w, `{"error": "Failed to send message"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"messageId": messageID})
}

// HandleGetMessages fetches messages for a match, oldest first
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	if matchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.ChatService.GetMessages(r.Context(), matchID, limit)
	if err != nil {
		log.Printf("Error fetching messages: %v", err)
		http.Error(w, `{"error": "Failed to fetch messages"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// HandleIsAccessible reports whether the user may use the chat
func (c *ChatController) HandleIsAccessible(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	userID := r.URL.Query().Get("userId")
	if matchID == "" || userID == "" {
		http.Error(w, `{"error": "matchId and userId are required"}`, http.StatusBadRequest)
		return
	}

	accessible := c.ChatService.IsChatAccessible(r.Context(), matchID, userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"accessible": accessible})
}

// HandleMarkAsRead marks one message as read
func (c *ChatController) HandleMarkAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID   string `json:"matchId"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.CreatedAt == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, createdAt"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.MarkMessageAsRead(r.Context(), request.MatchID, request.CreatedAt); err != nil {
		http.Error(w, `{"error": "Failed to mark message as read"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleMarkAllAsRead marks every message the user received in the match as read
func (c *ChatController) HandleMarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, userId"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.MarkAllAsRead(r.Context(), request.MatchID, request.UserID); err != nil {
		http.Error(w, `{"error": "Failed to mark messages as read"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleTranslate translates a message for display
func (c *ChatController) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Text       string `json:"text"`
		TargetLang string `json:"targetLang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.TargetLang == "" {
		http.Error(w, `{"error": "targetLang is required"}`, http.StatusBadRequest)
		return
	}

	translated := services.TranslateMessage(request.Text, request.TargetLang)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"translatedText": translated})
}

package routes

import (
	"koja_server/controllers"
	"koja_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/accessible", controller.HandleIsAccessible).Methods("GET")
	chatRouter.HandleFunc("/messages/mark-as-read", controller.HandleMarkAsRead).Methods("POST")
	chatRouter.HandleFunc("/messages/mark-all-as-read", controller.HandleMarkAllAsRead).Methods("POST")
	chatRouter.HandleFunc("/translate", controller.HandleTranslate).Methods("POST")
}

package routes

import (
	"koja_server/controllers"
	"koja_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes for notification preferences under /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()

	notificationRouter.HandleFunc("/settings", controller.HandleGetSettings).Methods("GET")
	notificationRouter.HandleFunc("/settings", controller.HandleUpdateSettings).Methods("PATCH")
	notificationRouter.HandleFunc("/push/subscribe", controller.HandleSubscribePush).Methods("POST")
	notificationRouter.HandleFunc("/push/unsubscribe", controller.HandleUnsubscribePush).Methods("POST")
}

package routes

import (
	"koja_server/controllers"
	"koja_server/services"

	"github.com/gorilla/mux"
)

// RegisterRoomRoutes sets up routes for room preference operations under /api/rooms
func RegisterRoomRoutes(r *mux.Router, roomService *services.RoomService) {
	controller := controllers.NewRoomController(roomService)

	roomRouter := r.PathPrefix("/api/rooms").Subrouter()

	roomRouter.HandleFunc("/settings", controller.HandleGetSettings).Methods("GET")
	roomRouter.HandleFunc("/settings/all", controller.HandleGetAllSettings).Methods("GET")
	roomRouter.HandleFunc("/pin", controller.HandlePinRoom).Methods("POST")
	roomRouter.HandleFunc("/unpin", controller.HandleUnpinRoom).Methods("POST")
	roomRouter.HandleFunc("/alerts", controller.HandleToggleAlerts).Methods("POST")
	roomRouter.HandleFunc("/leave", controller.HandleLeaveRoom).Methods("POST")
}

package routes

import (
	"koja_server/controllers"
	"koja_server/services"

	"github.com/gorilla/mux"
)

// RegisterSafetyRoutes sets up routes for block/report operations under /api/safety
func RegisterSafetyRoutes(r *mux.Router, safetyService *services.SafetyService, matchService *services.MatchService) {
	controller := controllers.NewSafetyController(safetyService, matchService)

	safetyRouter := r.PathPrefix("/api/safety").Subrouter()

	safetyRouter.HandleFunc("/block", controller.HandleBlockUser).Methods("POST")
	safetyRouter.HandleFunc("/unblock", controller.HandleUnblockUser).Methods("POST")
	safetyRouter.HandleFunc("/blocked", controller.HandleGetBlockedUsers).Methods("GET")
	safetyRouter.HandleFunc("/report", controller.HandleReportUser).Methods("POST")
}

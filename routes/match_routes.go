package routes

import (
	"koja_server/controllers"
	"koja_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for like/match operations under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()

	matchRouter.HandleFunc("/like", controller.HandleCreateLike).Methods("POST")
	matchRouter.HandleFunc("/mutual", controller.HandleCheckMutualLike).Methods("GET")
	matchRouter.HandleFunc("/matches", controller.HandleGetMatches).Methods("GET")
	matchRouter.HandleFunc("/match", controller.HandleGetMatch).Methods("GET")
	matchRouter.HandleFunc("/unmatch", controller.HandleUnmatch).Methods("POST")
	matchRouter.HandleFunc("/new-like-count", controller.HandleNewLikeCount).Methods("GET")
}

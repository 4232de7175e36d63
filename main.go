package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"koja_server/config"
	"koja_server/routes"
	"koja_server/services"
	"koja_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWS.Region)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	likeCache := services.NewLikeCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	s3Service, err := services.NewS3Service(cfg.AWS.Region, cfg.AWS.Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Socket.IO server for live chat rooms
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("socket.io server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	matchService := &services.MatchService{Store: dynamoService, Likes: likeCache}
	safetyService := &services.SafetyService{Store: dynamoService}
	chatService := &services.ChatService{
		Store:     dynamoService,
		Match:     matchService,
		Safety:    safetyService,
		Hub:       services.NewChatHub(),
		Broadcast: &socket.Hub{Server: socketServer},
	}
	roomService := &services.RoomService{Store: dynamoService, Match: matchService}
	notificationService := &services.NotificationService{Store: dynamoService}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to KO-JA Match")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterSafetyRoutes(r, safetyService, matchService)
	routes.RegisterRoomRoutes(r, roomService)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterS3Routes(r, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, corsHandler))
}

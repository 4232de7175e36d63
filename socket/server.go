package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server. Clients join one room
// per match and receive "newMessage" events for it.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, matchID string) {
		if matchID == "" {
			log.Println("Invalid matchId in join request")
			return
		}
		c.Join(matchID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, matchID string) {
		c.Leave(matchID)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", c.ID(), reason)
	})

	return server
}

// Hub adapts the Socket.IO server to the chat gateway's broadcaster.
type Hub struct {
	Server *socketio.Server
}

// BroadcastNewMessage emits a newMessage event to everyone in the match room.
func (h *Hub) BroadcastNewMessage(matchID string, message interface{}) {
	h.Server.BroadcastToRoom("/", matchID, "newMessage", message)
}

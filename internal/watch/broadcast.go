package watch

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pld-lang/pld/internal/compiler/errors"
)

// DiagnosticServer broadcasts compile results over WebSocket to every
// connected client, the same register/unregister/broadcast channel shape
// as the teacher's ReloadServer, repurposed from "browser asset reload"
// to "schema diagnostics".
type DiagnosticServer struct {
	connections map[*websocket.Conn]bool
	broadcast   chan *Message
	register    chan *websocket.Conn
	unregister  chan *websocket.Conn
	done        chan struct{}
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader
}

// Message is one diagnostic push sent to clients.
type Message struct {
	Type      string             `json:"type"` // "building", "diagnostics", "success"
	Timestamp int64              `json:"timestamp"`
	Errors    []*errors.Diagnostic `json:"errors,omitempty"`
	Files     []string           `json:"files,omitempty"`
	Duration  float64            `json:"duration,omitempty"` // milliseconds
}

// NewDiagnosticServer creates and starts a diagnostic broadcast server.
func NewDiagnosticServer() *DiagnosticServer {
	ds := &DiagnosticServer{
		connections: make(map[*websocket.Conn]bool),
		broadcast:   make(chan *Message, 256),
		register:    make(chan *websocket.Conn),
		unregister:  make(chan *websocket.Conn),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return strings.HasPrefix(origin, "http://localhost") ||
					strings.HasPrefix(origin, "https://localhost") ||
					strings.HasPrefix(origin, "http://127.0.0.1") ||
					strings.HasPrefix(origin, "https://127.0.0.1")
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	go ds.run()
	return ds
}

func (ds *DiagnosticServer) run() {
	for {
		select {
		case <-ds.done:
			log.Printf("[watch] shutting down diagnostic server")
			return

		case conn := <-ds.register:
			ds.mutex.Lock()
			ds.connections[conn] = true
			ds.mutex.Unlock()
			log.Printf("[watch] client connected (total: %d)", len(ds.connections))

		case conn := <-ds.unregister:
			ds.mutex.Lock()
			if _, ok := ds.connections[conn]; ok {
				delete(ds.connections, conn)
				conn.Close()
			}
			ds.mutex.Unlock()
			log.Printf("[watch] client disconnected (total: %d)", len(ds.connections))

		case message := <-ds.broadcast:
			ds.sendToAll(message)
		}
	}
}

func (ds *DiagnosticServer) sendToAll(message *Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("[watch] failed to marshal message: %v", err)
		return
	}

	ds.mutex.RLock()
	var failed []*websocket.Conn
	for conn := range ds.connections {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("[watch] failed to send message: %v", err)
			failed = append(failed, conn)
		}
	}
	ds.mutex.RUnlock()

	if len(failed) > 0 {
		ds.mutex.Lock()
		for _, conn := range failed {
			if _, ok := ds.connections[conn]; ok {
				conn.Close()
				delete(ds.connections, conn)
			}
		}
		ds.mutex.Unlock()
	}
}

// HandleWebSocket upgrades an HTTP request to a WebSocket connection.
func (ds *DiagnosticServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ds.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[watch] failed to upgrade connection: %v", err)
		return
	}

	ds.register <- conn
	go ds.readMessages(conn)
}

func (ds *DiagnosticServer) readMessages(conn *websocket.Conn) {
	defer func() {
		ds.unregister <- conn
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[watch] websocket error: %v", err)
			}
			break
		}
	}
}

// NotifyBuilding announces that a rebuild has started for the given files.
func (ds *DiagnosticServer) NotifyBuilding(files []string) {
	ds.broadcast <- &Message{Type: "building", Timestamp: time.Now().Unix(), Files: files}
}

// NotifyDiagnostics announces the result of a rebuild (possibly empty,
// meaning the schema compiled clean).
func (ds *DiagnosticServer) NotifyDiagnostics(diags errors.List, duration time.Duration) {
	ds.broadcast <- &Message{
		Type:      "diagnostics",
		Timestamp: time.Now().Unix(),
		Errors:    diags,
		Duration:  float64(duration.Milliseconds()),
	}
}

// NotifySuccess announces a clean rebuild with no diagnostics.
func (ds *DiagnosticServer) NotifySuccess(duration time.Duration) {
	ds.broadcast <- &Message{Type: "success", Timestamp: time.Now().Unix(), Duration: float64(duration.Milliseconds())}
}

// ConnectionCount returns the number of currently connected clients.
func (ds *DiagnosticServer) ConnectionCount() int {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	return len(ds.connections)
}

// Close shuts the server down and closes every connection.
func (ds *DiagnosticServer) Close() {
	close(ds.done)

	ds.mutex.Lock()
	defer ds.mutex.Unlock()
	for conn := range ds.connections {
		conn.Close()
	}
	ds.connections = make(map[*websocket.Conn]bool)
}

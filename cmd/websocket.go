package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"hanapBack/internal/handlers"
)

const (
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
	readDeadline  = 120 * time.Second
)

type syncEvent struct {
	Event string `json:"event"`
}

type syncClient struct {
	userID string
	conn   *websocket.Conn
}

// FavoritesSyncManager keeps one socket set per user and pushes a
// favorites_changed event to all of a user's connections when the server
// confirms an add or remove. Screens on other devices resync their
// favorited-id set when they see it (or on next focus, whichever comes
// first). All access to clients happens in Run.
type FavoritesSyncManager struct {
	infoLog    *log.Logger
	clients    map[string]map[*websocket.Conn]struct{}
	register   chan syncClient
	unregister chan syncClient
	notify     chan string
}

func NewFavoritesSyncManager(infoLog *log.Logger) *FavoritesSyncManager {
	if infoLog == nil {
		infoLog = log.Default()
	}
	return &FavoritesSyncManager{
		infoLog:    infoLog,
		clients:    make(map[string]map[*websocket.Conn]struct{}),
		register:   make(chan syncClient),
		unregister: make(chan syncClient),
		notify:     make(chan string, 16),
	}
}

func (m *FavoritesSyncManager) Run() {
	for {
		select {
		case c := <-m.register:
			if m.clients[c.userID] == nil {
				m.clients[c.userID] = make(map[*websocket.Conn]struct{})
			}
			m.clients[c.userID][c.conn] = struct{}{}
			m.infoLog.Printf("favorites sync: register user=%s", c.userID)

		case c := <-m.unregister:
			if conns, ok := m.clients[c.userID]; ok {
				if _, ok := conns[c.conn]; ok {
					c.conn.Close()
					delete(conns, c.conn)
					if len(conns) == 0 {
						delete(m.clients, c.userID)
					}
				}
			}

		case userID := <-m.notify:
			for conn := range m.clients[userID] {
				conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(syncEvent{Event: "favorites_changed"}); err != nil {
					m.infoLog.Printf("favorites sync: push to user=%s failed: %v", userID, err)
					conn.Close()
					delete(m.clients[userID], conn)
				}
			}
		}
	}
}

// NotifyFavoritesChanged implements handlers.FavoritesNotifier. Non-blocking:
// a full queue drops the event, the focus-triggered resync still covers it.
func (m *FavoritesSyncManager) NotifyFavoritesChanged(userID string) {
	select {
	case m.notify <- userID:
	default:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// FavoritesSyncHandler upgrades an authenticated connection and parks it in
// the hub until the client goes away.
func (app *application) FavoritesSyncHandler(w http.ResponseWriter, r *http.Request) {
	var session handlers.ContextSession
	userID, ok := session.CurrentUserID(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade error: %v", err)
		return
	}

	client := syncClient{userID: userID, conn: conn}
	app.syncManager.register <- client

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	go app.pingLoop(conn)

	go func() {
		defer func() {
			app.syncManager.unregister <- client
		}()
		for {
			// clients never send payloads; the read loop only detects close
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (app *application) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for range ticker.C {
		conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

package v1

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"prizedraw-api/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// WinAnnouncement is the broadcast payload pushed when a draw lands.
type WinAnnouncement struct {
	Type            string `json:"type"`
	Username        string `json:"username"`
	CompetitionID   uint   `json:"competitionId"`
	CompetitionName string `json:"competitionName"`
	Place           int    `json:"place"`
	// PrizeValue in minor currency units.
	PrizeValue int64 `json:"prizeValue"`
}

// FeedHandler fans out draw results to every connected spectator. The
// feed is read-only; inbound frames are drained and dropped.
type FeedHandler struct {
	clients      map[*feedClient]bool
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *feedClient
	unregister   chan *feedClient
}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

func (h *FeedHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = true
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case message := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// AnnounceWin satisfies the draw service's announcer.
func (h *FeedHandler) AnnounceWin(win domain.Win, competition domain.Competition, username string) {
	payload, err := json.Marshal(WinAnnouncement{
		Type:            "win",
		Username:        username,
		CompetitionID:   competition.ID,
		CompetitionName: competition.Title,
		Place:           win.Place,
		PrizeValue:      win.PrizeValue,
	})
	if err != nil {
		zap.L().Error("marshaling win announcement failed", zap.Error(err))
		return
	}

	h.broadcast <- payload
}

// HandleWebSocket godoc
// @Summary      Subscribe to the live draw feed
// @Tags         feed
// @Produce      json
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      500  {object}  response.Err
// @Router       /feed [get]
func (h *FeedHandler) HandleWebSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *feedClient) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err = w.Close(); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *feedClient) readPump(h *FeedHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("feed client dropped", zap.Error(err))
			}
			break
		}
	}
}

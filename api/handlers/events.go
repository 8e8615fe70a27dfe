package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ecovigia/wildlife-case-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CaseHub fans case lifecycle events out to connected websocket
// clients
type CaseHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

// NewCaseHub returns an empty hub
func NewCaseHub() *CaseHub {
	return &CaseHub{
		clients: make(map[string]*websocket.Conn),
	}
}

// ServeWS upgrades the request and keeps the connection registered
// until the client goes away
func (h *CaseHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorf("websocket upgrade error: %v", err)
		return
	}

	clientID := uuid.New().String()

	h.mutex.Lock()
	h.clients[clientID] = conn
	h.mutex.Unlock()
	zap.S().Debugf("client %s connected to /ws/cases", clientID)

	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, clientID)
		h.mutex.Unlock()
		zap.S().Debugf("client %s disconnected from /ws/cases", clientID)
		return nil
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.mutex.Lock()
			delete(h.clients, clientID)
			h.mutex.Unlock()
			conn.Close()
			break
		}
	}
}

// BroadcastCaseCreated announces a freshly stored case
func (h *CaseHub) BroadcastCaseCreated(p *models.Process) {
	h.broadcast("case_created", p)
}

// BroadcastStatusChanged announces a lifecycle transition
func (h *CaseHub) BroadcastStatusChanged(p *models.Process) {
	h.broadcast("case_status_changed", p)
}

func (h *CaseHub) broadcast(eventType string, data interface{}) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for clientID, conn := range h.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": eventType,
			"data":  data,
		})
		if err != nil {
			zap.S().Warnf("error broadcasting %s to client %s: %v", eventType, clientID, err)
			delete(h.clients, clientID)
			conn.Close()
		}
	}
}

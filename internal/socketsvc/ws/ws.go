package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/avvvet/cardcraft-services/internal/comm"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// Client serializes writes; gorilla connections allow one writer at a time.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

type Ws struct {
	connMap sync.Map // socketId -> *Client
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "ping":
		s.reply(socketId, "pong", nil)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) reply(socketId, t string, v interface{}) {
	c, ok := s.GetConnection(socketId)
	if !ok {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal %s reply: %v", t, err)
		return
	}
	if err := c.WriteJSON(&comm.WSMessage{Type: t, Data: data, SocketId: socketId}); err != nil {
		log.Errorf("write %s to %s: %v", t, socketId, err)
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) *Client {
	c := &Client{conn: conn}
	s.connMap.Store(socketId, c)
	return c
}

func (s *Ws) GetConnection(socketId string) (*Client, bool) {
	c, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return c.(*Client), true
}

// HandleDisconnect forgets a closed socket.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

func (s *Ws) Count() int {
	n := 0
	s.connMap.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Broadcast writes m to every open socket and returns how many succeeded.
// Sockets that fail to accept the write are dropped.
func (s *Ws) Broadcast(m *comm.WSMessage) int {
	sent := 0
	s.connMap.Range(func(key, value any) bool {
		socketId := key.(string)
		if err := value.(*Client).WriteJSON(m); err != nil {
			log.Warnf("dropping socket %s: %v", socketId, err)
			s.HandleDisconnect(socketId)
			return true
		}
		sent++
		return true
	})
	return sent
}

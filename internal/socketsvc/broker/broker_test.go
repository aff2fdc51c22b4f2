package broker

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avvvet/cardcraft-services/internal/comm"
	"github.com/avvvet/cardcraft-services/internal/socketsvc/routes"
	"github.com/avvvet/cardcraft-services/internal/socketsvc/ws"
	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T) (*ws.Ws, *websocket.Conn) {
	t.Helper()
	s := ws.NewWs()
	r := chi.NewRouter()
	routes.SetRoutes(r, s)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return s.Count() == 1 }, time.Second, 10*time.Millisecond)
	return s, conn
}

func TestCatalogChangeIsBroadcast(t *testing.T) {
	s, conn := dial(t)
	b := NewBroker(nil, s.Broadcast)

	payload, err := comm.Envelope(comm.TypeCatalogChanged, comm.CatalogChange{Action: "updated", TemplateID: "t1"})
	require.NoError(t, err)
	b.handleMessages(&nats.Msg{Data: payload})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got comm.WSMessage
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, comm.TypeCatalogChanged, got.Type)

	var change comm.CatalogChange
	require.NoError(t, json.Unmarshal(got.Data, &change))
	assert.Equal(t, "t1", change.TemplateID)
}

func TestUnknownMessagesAreNotBroadcast(t *testing.T) {
	calls := 0
	b := NewBroker(nil, func(*comm.WSMessage) int { calls++; return 0 })

	payload, err := comm.Envelope(comm.TypeContactMessage, comm.ContactData{ID: "c1"})
	require.NoError(t, err)
	b.handleMessages(&nats.Msg{Data: payload})
	b.handleMessages(&nats.Msg{Data: []byte("not json")})

	assert.Zero(t, calls)
}

func TestPingPongAndDisconnect(t *testing.T) {
	s, conn := dial(t)

	require.NoError(t, conn.WriteJSON(comm.WSMessage{Type: "ping"}))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got comm.WSMessage
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "pong", got.Type)
	assert.NotEmpty(t, got.SocketId)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{bad")))
	var errMsg map[string]string
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, "error", errMsg["type"])

	conn.Close()
	assert.Eventually(t, func() bool { return s.Count() == 0 }, time.Second, 10*time.Millisecond)
}

package broker

import (
	"encoding/json"

	"github.com/avvvet/cardcraft-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn      *nats.Conn
	Broadcast func(*comm.WSMessage) int
}

func NewBroker(conn *nats.Conn, fncBroadcast func(*comm.WSMessage) int) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: fncBroadcast,
	}
}

// Subscribe without a queue group: every socket instance needs every change.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handleMessages receive message from card service
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	if err := json.Unmarshal(msgNats.Data, message); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case comm.TypeCatalogChanged:
		n := b.Broadcast(message)
		log.Debugf("catalog change pushed to %d sockets", n)
	default:
		log.Errorf("Unknown message %s", message.Type)
	}
}

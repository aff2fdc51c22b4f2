package mailsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avvvet/cardcraft-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// QueueGroup lets several mailsvc instances share contact.service without
// sending duplicates.
const QueueGroup = "mailsvc"

type Consumer struct {
	sender  Sender
	timeout time.Duration
}

func NewConsumer(sender Sender) *Consumer {
	return &Consumer{sender: sender, timeout: 30 * time.Second}
}

func (c *Consumer) Subscribe(nc *nats.Conn) (*nats.Subscription, error) {
	return nc.QueueSubscribe(comm.TopicContact, QueueGroup, c.handleMessage)
}

func (c *Consumer) handleMessage(msg *nats.Msg) {
	if err := c.Handle(msg.Data); err != nil {
		log.Errorf("[mailsvc] %v", err)
	}
}

// Handle decodes one envelope and sends it. Other message types are ignored.
func (c *Consumer) Handle(data []byte) error {
	var ws comm.WSMessage
	if err := json.Unmarshal(data, &ws); err != nil {
		return fmt.Errorf("invalid WSMessage: %w", err)
	}
	if ws.Type != comm.TypeContactMessage {
		return nil
	}

	var contact comm.ContactData
	if err := json.Unmarshal(ws.Data, &contact); err != nil {
		return fmt.Errorf("invalid contact payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.sender.Send(ctx, contact); err != nil {
		return err
	}
	log.Infof("contact message %s forwarded", contact.ID)
	return nil
}

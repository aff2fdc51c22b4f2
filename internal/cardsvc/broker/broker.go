package broker

import (
	"github.com/avvvet/cardcraft-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker publishes card service events for mailsvc and socketsvc.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishContact hands a contact submission to the mail service.
func (b *Broker) PublishContact(c comm.ContactData) error {
	payload, err := comm.Envelope(comm.TypeContactMessage, c)
	if err != nil {
		log.Errorf("[PublishContact] unable to marshal contact %s: %s", c.ID, err)
		return err
	}
	return b.Publish(comm.TopicContact, payload)
}

// PublishCatalogChange notifies socket clients that the published catalog moved.
func (b *Broker) PublishCatalogChange(c comm.CatalogChange) error {
	payload, err := comm.Envelope(comm.TypeCatalogChanged, c)
	if err != nil {
		log.Errorf("[PublishCatalogChange] unable to marshal change %s: %s", c.TemplateID, err)
		return err
	}
	return b.Publish(comm.TopicCatalog, payload)
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

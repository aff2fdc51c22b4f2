package comm

import (
	"encoding/json"
	"time"
)

// NATS topics
const (
	TopicContact = "contact.service"
	TopicCatalog = "catalog.service"
)

// message types
const (
	TypeContactMessage = "contact-message"
	TypeCatalogChanged = "catalog-changed"
)

// WSMessage is the envelope shared by NATS payloads and websocket frames.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "contact-message", "catalog-changed"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

// ContactData is a contact form submission forwarded to the mail service.
type ContactData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// CatalogChange tells socket clients to refetch the catalog.
type CatalogChange struct {
	Action     string    `json:"action"` // created, updated, deleted
	TemplateID string    `json:"templateId"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}

// Envelope wraps v as a WSMessage of type t.
func Envelope(t string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&WSMessage{Type: t, Data: data})
}

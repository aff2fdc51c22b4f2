package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/comm"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingPublisher struct {
	mu       sync.Mutex
	contacts []comm.ContactData
	changes  []comm.CatalogChange
	err      error
}

func (p *recordingPublisher) PublishContact(c comm.ContactData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.contacts = append(p.contacts, c)
	return nil
}

func (p *recordingPublisher) PublishCatalogChange(c comm.CatalogChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.changes = append(p.changes, c)
	return nil
}

type fakeExporter struct {
	html string
	png  []byte
	err  error
}

func (e *fakeExporter) Capture(_ context.Context, html string) ([]byte, error) {
	e.html = html
	if e.err != nil {
		return nil, e.err
	}
	return e.png, nil
}

type putCall struct {
	key, contentType string
	body             []byte
}

type fakeUploader struct {
	puts []putCall
	err  error
}

func (u *fakeUploader) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.puts = append(u.puts, putCall{key: key, contentType: contentType, body: body})
	return "https://cdn.test/" + key, nil
}

var errBoom = errors.New("boom")

func publishedTemplate(name string, config map[string]any) models.Template {
	return models.Template{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Status:    "published",
		Config:    config,
		UpdatedAt: time.Now().UTC(),
	}
}

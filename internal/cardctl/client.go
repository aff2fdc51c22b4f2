// Package cardctl is the HTTP client behind the cardctl command line tool.
package cardctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	log "github.com/sirupsen/logrus"
)

// envelope mirrors the card service response body.
type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// APIError is a non 2xx answer from the card service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("card service returned %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 90 * time.Second},
	}
}

// Health returns the service status message.
func (c *Client) Health(ctx context.Context) (string, error) {
	env, err := c.call(ctx, http.MethodGet, "/v1/health", nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Managed loads the published templates. It satisfies card.Fetcher.
func (c *Client) Managed(ctx context.Context) ([]card.Managed, error) {
	env, err := c.call(ctx, http.MethodGet, "/v1/templates", nil)
	if err != nil {
		return nil, err
	}
	var items []models.Template
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	out := make([]card.Managed, 0, len(items))
	for _, t := range items {
		out = append(out, t.Managed())
	}
	return out, nil
}

// Gallery builds a local catalog from the classic designs and the server's
// published templates. A failed fetch still yields the classic entries.
func (c *Client) Gallery(ctx context.Context, pageSize int) (*card.Gallery, error) {
	g := card.NewGallery(card.ClassicTemplates(), pageSize)
	if _, err := g.Refresh(ctx, c.Managed); err != nil {
		log.Warnf("managed templates unavailable: %v", err)
		return g, err
	}
	return g, nil
}

func (c *Client) Render(ctx context.Context, req service.RenderRequest) (*service.Preview, error) {
	env, err := c.call(ctx, http.MethodPost, "/v1/render", req)
	if err != nil {
		return nil, err
	}
	p := &service.Preview{}
	if err := json.Unmarshal(env.Data, p); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return p, nil
}

// Export downloads the PNG for one side of the card.
func (c *Client) Export(ctx context.Context, req service.RenderRequest) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/export", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) VCard(ctx context.Context, d card.BusinessCardData) (string, error) {
	q := url.Values{}
	for k, v := range map[string]string{
		"name": d.Name, "title": d.Title, "company": d.Company, "email": d.Email,
		"phone": d.Phone, "website": d.Website, "address": d.Address,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	resp, err := c.do(ctx, http.MethodGet, "/v1/vcard?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}
	b, err := io.ReadAll(resp.Body)
	return string(b), err
}

func (c *Client) call(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apiError(resp)
	}
	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTP.Do(req)
}

func apiError(resp *http.Response) error {
	env := envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: env.Error}
}

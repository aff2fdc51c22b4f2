package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/store/memstore"
	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExporter struct{ err error }

func (e *stubExporter) Capture(context.Context, string) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []byte("\x89PNG-test"), nil
}

type stubUploader struct{}

func (stubUploader) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	return "https://cdn.test/" + key, nil
}

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

type env struct {
	router    *chi.Mux
	templates *memstore.TemplateStore
	gen       *stubGenerator
	exp       *stubExporter
	admin     string
	user      string
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	e := &env{
		templates: memstore.NewTemplateStore(),
		gen:       &stubGenerator{},
		exp:       &stubExporter{},
	}
	auth := service.NewAuthService(memstore.NewUserStore(), "test-secret", time.Hour)
	templates := service.NewTemplateService(e.templates, nil)
	orders := service.NewOrderService(memstore.NewOrderStore(), e.templates)

	h := NewHandler(Services{
		Auth:      auth,
		Templates: templates,
		Catalog:   service.NewCatalogService(templates.Managed, 0),
		Contacts:  service.NewContactService(memstore.NewContactStore(), nil),
		Uploads:   service.NewUploadService(stubUploader{}),
		Designs:   service.NewDesignService(e.gen),
		Render:    service.NewRenderService(e.templates, orders, e.exp),
		Orders:    orders,
	})
	e.router = chi.NewRouter()
	h.SetRoutes(e.router)

	admin, err := auth.Signup(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	user, err := auth.Signup(ctx, "user@example.com", "pw")
	require.NoError(t, err)
	e.admin, e.user = admin.Token, user.Token
	return e
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func parse(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealth(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/v1/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]bool
	parse(t, rec, &data)
	assert.True(t, data["ok"])
}

func TestAuthRoutes(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodPost, "/v1/auth/signup", "", credentials{Email: "admin@example.com", Password: "x"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/auth/login", "", credentials{Email: "user@example.com", Password: "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/auth/login", "", credentials{Email: "user@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	var s service.Session
	parse(t, rec, &s)
	assert.Equal(t, models.RoleUser, s.User.Role)
	assert.NotEmpty(t, s.Token)

	rec = e.do(t, http.MethodGet, "/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/v1/auth/me", e.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.UserView
	parse(t, rec, &me)
	assert.Equal(t, models.RoleAdmin, me.Role)
}

func TestTemplateRoutes(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodPost, "/v1/templates", "", models.TemplateInput{Name: "Gold"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/templates", e.user, models.TemplateInput{Name: "Gold"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/templates", e.admin, models.TemplateInput{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/templates", e.admin, models.TemplateInput{Name: "Gold"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Template
	parse(t, rec, &created)
	id := created.ID.Hex()

	var listed []models.Template
	parse(t, e.do(t, http.MethodGet, "/v1/templates", "", nil), &listed)
	assert.Empty(t, listed, "drafts are not public")

	rec = e.do(t, http.MethodPut, "/v1/templates/"+id, e.admin, map[string]string{"status": "published"})
	require.Equal(t, http.StatusOK, rec.Code)

	parse(t, e.do(t, http.MethodGet, "/v1/templates", "", nil), &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Gold", listed[0].Name)

	rec = e.do(t, http.MethodGet, "/v1/templates/all", e.admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPut, "/v1/templates/000000000000000000000000", e.admin, map[string]string{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodDelete, "/v1/templates/"+id, e.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/v1/templates/"+id, e.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRoute(t *testing.T) {
	e := setup(t)

	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "bg.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/upload?thumbnail=true", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.admin)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.UploadResult
	parse(t, rec, &res)
	assert.Contains(t, res.URL, "https://cdn.test/templates/")
	assert.Contains(t, res.ThumbnailURL, "_thumb.jpg")

	req = httptest.NewRequest(http.MethodPost, "/v1/upload", bytes.NewBufferString("nope"))
	req.Header.Set("Authorization", "Bearer "+e.admin)
	rec = httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactRoutes(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodPost, "/v1/contact", "", service.ContactInput{Name: "Ana", Email: "bad", Message: "hi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/contact", "", service.ContactInput{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		OK bool   `json:"ok"`
		ID string `json:"id"`
	}
	parse(t, rec, &created)
	assert.True(t, created.OK)
	require.NotEmpty(t, created.ID)

	rec = e.do(t, http.MethodGet, "/v1/contact", e.user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var msgs []models.ContactMessage
	parse(t, e.do(t, http.MethodGet, "/v1/contact", e.admin, nil), &msgs)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.ContactStatusNew, msgs[0].Status)

	rec = e.do(t, http.MethodPatch, "/v1/contact/"+created.ID+"/read", e.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var read models.ContactMessage
	parse(t, rec, &read)
	assert.Equal(t, models.ContactStatusRead, read.Status)

	rec = e.do(t, http.MethodPatch, "/v1/contact/000000000000000000000000/read", e.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogRoute(t *testing.T) {
	e := setup(t)

	var view struct {
		card.Page
		Selected *card.DesignConfig `json:"selected"`
	}
	rec := e.do(t, http.MethodGet, "/v1/catalog?page=1&size=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	parse(t, rec, &view)
	assert.Equal(t, 1, view.Index)
	assert.Equal(t, len(card.ClassicTemplates()), view.Total)
	assert.Len(t, view.Items, len(card.ClassicTemplates())-5)
	require.NotNil(t, view.Selected)
	assert.Equal(t, "classic-001", view.Selected.ID())

	rec = e.do(t, http.MethodGet, "/v1/catalog?page=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateDesignsRoute(t *testing.T) {
	e := setup(t)

	e.gen.text = `[{"id":"a","name":"Bold","bgStyle":"solid","bgColors":["#000000"]}]`
	rec := e.do(t, http.MethodPost, "/v1/designs/generate", "", service.DesignRequest{Count: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Designs []card.Classic `json:"designs"`
	}
	parse(t, rec, &out)
	require.Len(t, out.Designs, 1)
	assert.Equal(t, "Bold", out.Designs[0].Name)

	rec = e.do(t, http.MethodPost, "/v1/designs/generate", "", service.DesignRequest{Count: 41})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e.gen.text = "no designs today"
	rec = e.do(t, http.MethodPost, "/v1/designs/generate", "", service.DesignRequest{Count: 2})
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	e.gen.err = fmt.Errorf("%w: quota", service.ErrRateLimited)
	rec = e.do(t, http.MethodPost, "/v1/designs/generate", "", service.DesignRequest{Count: 2})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", parse(t, rec, nil).Error)

	e.gen.err = fmt.Errorf("%w: credits", service.ErrPaymentRequired)
	rec = e.do(t, http.MethodPost, "/v1/designs/generate", "", service.DesignRequest{Count: 2})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, "Payment required. Please add credits to continue.", parse(t, rec, nil).Error)
}

func TestRenderRoute(t *testing.T) {
	e := setup(t)

	req := service.RenderRequest{
		Data: card.BusinessCardData{Name: "Jane", Email: "jane@acme.com"},
		Ref:  &card.Ref{Origin: card.OriginClassic, ID: "classic-002"},
	}
	rec := e.do(t, http.MethodPost, "/v1/render", "", req)
	require.Equal(t, http.StatusOK, rec.Code)
	var p service.Preview
	parse(t, rec, &p)
	require.NotNil(t, p.Front)
	require.NotNil(t, p.Back)
	assert.Equal(t, "classic-002", p.Front.DesignID)
	require.NotNil(t, p.Back.QR)
	assert.Contains(t, p.Back.QR.Payload, "FN:Jane")

	rec = e.do(t, http.MethodPost, "/v1/render", "", service.RenderRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportRoute(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	req := service.RenderRequest{
		Data: card.BusinessCardData{Name: "Jane"},
		Ref:  &card.Ref{Origin: card.OriginClassic, ID: "classic-001"},
		Side: card.SideBack,
	}
	rec := e.do(t, http.MethodPost, "/v1/export", "", req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "business-card-back.png")
	assert.Equal(t, "\x89PNG-test", rec.Body.String())

	premium := &models.Template{Name: "Gold", Status: "published", Config: map[string]any{"premium": true}}
	require.NoError(t, e.templates.Create(ctx, premium))
	rec = e.do(t, http.MethodPost, "/v1/export", "", service.RenderRequest{
		Ref: &card.Ref{Origin: card.OriginManaged, ID: premium.ID.Hex()},
	})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	e.exp.err = errors.New("chrome crashed")
	rec = e.do(t, http.MethodPost, "/v1/export", "", req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := parse(t, rec, nil)
	assert.Equal(t, "Failed to export card image. Please try again.", env.Error)
	assert.NotContains(t, env.Error, "chrome")
}

func TestOrderRoutes(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	premium := &models.Template{Name: "Gold", Status: "published", Config: map[string]any{"premium": true, "price": "$3.00"}}
	require.NoError(t, e.templates.Create(ctx, premium))
	items := orderRequest{Items: []service.CartItemInput{
		{Kind: card.OriginManaged, TemplateID: premium.ID.Hex(), Data: card.BusinessCardData{Name: "Jane"}},
		{Kind: card.OriginClassic, TemplateID: "classic-001"},
	}}

	rec := e.do(t, http.MethodPost, "/v1/orders", "", items)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/orders", e.user, items)
	require.Equal(t, http.StatusCreated, rec.Code)
	var o models.Order
	parse(t, rec, &o)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, "3", o.Total.String())

	rec = e.do(t, http.MethodGet, "/v1/orders", e.user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var all []models.Order
	parse(t, e.do(t, http.MethodGet, "/v1/orders", e.admin, nil), &all)
	assert.Len(t, all, 1)

	rec = e.do(t, http.MethodPatch, "/v1/orders/"+o.ID.String()+"/status", e.admin, statusRequest{Status: "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPatch, "/v1/orders/"+o.ID.String()+"/status", e.admin, statusRequest{Status: models.OrderPaid})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/export", "", service.RenderRequest{
		Ref:     &card.Ref{Origin: card.OriginManaged, ID: premium.ID.Hex()},
		OrderID: o.ID.String(),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVCardRoute(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/v1/vcard?name=Jane+Doe&email=jane@acme.com&company=Acme,+Inc", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/vcard; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\n")
	assert.Contains(t, rec.Body.String(), "ORG:Acme, Inc\n")
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: x", service.ErrValidation), http.StatusBadRequest},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("wrap: %w", service.ErrNotFound), http.StatusNotFound},
		{service.ErrAlreadyExists, http.StatusConflict},
		{service.ErrPremiumLocked, http.StatusPaymentRequired},
		{service.ErrRateLimited, http.StatusTooManyRequests},
		{service.ErrPaymentRequired, http.StatusPaymentRequired},
		{card.ErrMalformedDesigns, http.StatusBadGateway},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		code, msg := statusFor(c.err)
		assert.Equal(t, c.code, code, c.err.Error())
		assert.NotEmpty(t, msg)
	}

	_, msg := statusFor(errors.New("db password=secret"))
	assert.NotContains(t, msg, "secret")
}

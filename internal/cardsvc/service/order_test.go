package service

import (
	"context"
	"testing"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/store/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]string{
		"$2.99":  "2.99",
		"4.5":    "4.5",
		" $10 ":  "10",
		"$1.005": "1.01",
	}
	for in, want := range cases {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	for _, bad := range []string{"", "free", "$-1"} {
		_, err := ParsePrice(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestOrder_CreatePricesOnServer(t *testing.T) {
	ctx := context.Background()
	premium := publishedTemplate("Gold", map[string]any{"premium": true, "price": "$4.50"})
	free := publishedTemplate("Plain", nil)
	svc := NewOrderService(memstore.NewOrderStore(), memstore.NewTemplateStore(premium, free))

	o, err := svc.Create(ctx, "user-1", []CartItemInput{
		{Kind: card.OriginManaged, TemplateID: premium.ID.Hex(), Data: card.BusinessCardData{Name: " Jane "}},
		{Kind: card.OriginManaged, TemplateID: free.ID.Hex()},
		{Kind: card.OriginClassic, TemplateID: "classic-002"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, "user-1", o.UserID)
	require.Len(t, o.Items, 3)
	assert.Equal(t, "Gold", o.Items[0].Name)
	assert.Equal(t, "Jane", o.Items[0].Data.Name)
	assert.Equal(t, "4.5", o.Items[0].Price.String())
	assert.True(t, o.Items[1].Price.IsZero())
	assert.Equal(t, "Midnight", o.Items[2].Name)
	assert.Equal(t, "4.50", o.Total.StringFixed(2))
}

func TestOrder_CreateRejectsBadItems(t *testing.T) {
	ctx := context.Background()
	draft := models.Template{ID: primitive.NewObjectID(), Name: "Draft", Status: "draft"}
	svc := NewOrderService(memstore.NewOrderStore(), memstore.NewTemplateStore(draft))

	_, err := svc.Create(ctx, "u", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "u", []CartItemInput{{Kind: card.OriginGenerated, TemplateID: "ai-1"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "u", []CartItemInput{{Kind: card.OriginClassic, TemplateID: "classic-999"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, "u", []CartItemInput{{Kind: card.OriginManaged, TemplateID: draft.ID.Hex()}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrder_SetStatusAndUnlocks(t *testing.T) {
	ctx := context.Background()
	premium := publishedTemplate("Gold", map[string]any{"premium": true})
	svc := NewOrderService(memstore.NewOrderStore(), memstore.NewTemplateStore(premium))

	o, err := svc.Create(ctx, "u", []CartItemInput{{Kind: card.OriginManaged, TemplateID: premium.ID.Hex()}})
	require.NoError(t, err)

	ok, err := svc.Unlocks(ctx, o.ID.String(), premium.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok, "pending orders unlock nothing")

	_, err = svc.SetStatus(ctx, o.ID.String(), "shipped")
	assert.ErrorIs(t, err, ErrValidation)

	paid, err := svc.SetStatus(ctx, o.ID.String(), models.OrderPaid)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, paid.Status)

	ok, err = svc.Unlocks(ctx, o.ID.String(), premium.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Unlocks(ctx, o.ID.String(), "other-template")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Unlocks(ctx, "", premium.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.SetStatus(ctx, "6f1f4c1e-7a3b-4a7e-9a55-5d1d2f0b8c11", models.OrderPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}

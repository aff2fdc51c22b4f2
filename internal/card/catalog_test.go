package card

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func published(ids ...string) []Managed {
	out := make([]Managed, 0, len(ids))
	for _, id := range ids {
		out = append(out, Managed{ID: id, Name: "T " + id, Status: StatusPublished})
	}
	return out
}

func TestCompose_ManagedFirst(t *testing.T) {
	classic := ClassicTemplates()[:3]

	got := Compose(published("m1", "m2"), classic)

	require.Len(t, got, 5)
	want := []Ref{
		{OriginManaged, "m1"}, {OriginManaged, "m2"},
		{OriginClassic, classic[0].ID}, {OriginClassic, classic[1].ID}, {OriginClassic, classic[2].ID},
	}
	for i, ref := range want {
		assert.Equal(t, ref, got[i].Ref())
	}
}

func TestCompose_DropsDrafts(t *testing.T) {
	managed := published("m1")
	managed = append(managed, Managed{ID: "d1", Name: "Draft", Status: StatusDraft})

	got := Compose(managed, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID())
}

func TestDefaultSelection(t *testing.T) {
	classic := ClassicTemplates()

	d, ok := DefaultSelection(Compose(published("m1"), classic))
	require.True(t, ok)
	assert.Equal(t, Ref{OriginManaged, "m1"}, d.Ref())

	d, ok = DefaultSelection(Compose(nil, classic))
	require.True(t, ok)
	assert.Equal(t, Ref{OriginClassic, "classic-001"}, d.Ref())

	_, ok = DefaultSelection(nil)
	assert.False(t, ok)
}

func TestPaginate(t *testing.T) {
	entries := make([]DesignConfig, 0, 170)
	for i := 0; i < 170; i++ {
		entries = append(entries, FromClassic(Classic{ID: fmt.Sprintf("c%d", i)}))
	}

	p := Paginate(entries, 80, 0)
	assert.Equal(t, 3, p.Pages)
	assert.Len(t, p.Items, 80)
	assert.Equal(t, "c0", p.Items[0].ID())

	p = Paginate(entries, 80, 2)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, "c160", p.Items[0].ID())

	p = Paginate(entries, 0, 5)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Empty(t, p.Items)
}

func TestPaginate_HugeSize(t *testing.T) {
	entries := []DesignConfig{FromClassic(Classic{ID: "a"}), FromClassic(Classic{ID: "b"})}

	p := Paginate(entries, math.MaxInt, 0)
	assert.Equal(t, 1, p.Pages)
	assert.Len(t, p.Items, 2)

	p = Paginate(entries, math.MaxInt-1, 1)
	assert.Equal(t, 1, p.Pages)
	assert.Empty(t, p.Items)
}

func TestGallery_SelectsFirstManagedAfterFetch(t *testing.T) {
	g := NewGallery(ClassicTemplates(), 80)
	d, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, OriginClassic, d.Origin)

	applied, err := g.Refresh(context.Background(), func(context.Context) ([]Managed, error) {
		return published("m1", "m2"), nil
	})
	require.NoError(t, err)
	require.True(t, applied)

	d, _ = g.Selected()
	assert.Equal(t, Ref{OriginManaged, "m1"}, d.Ref())
	assert.Len(t, g.Entries(), 2+len(ClassicTemplates()))
}

func TestGallery_PageResetsWhenManagedCountChanges(t *testing.T) {
	g := NewGallery(ClassicTemplates(), 2)
	g.SetPage(3)

	gen := g.Begin()
	g.Apply(gen, published("m1"), nil)
	assert.Equal(t, 0, g.Page().Index)

	g.SetPage(1)
	gen = g.Begin()
	g.Apply(gen, published("m2"), nil)
	assert.Equal(t, 1, g.Page().Index, "same count keeps the page")
}

func TestGallery_StaleResponseIgnored(t *testing.T) {
	g := NewGallery(ClassicTemplates(), 80)

	slow := g.Begin()
	fast := g.Begin()

	assert.True(t, g.Apply(fast, published("new1", "new2"), nil))
	assert.False(t, g.Apply(slow, published("old"), nil))

	entries := g.Entries()
	assert.Equal(t, "new1", entries[0].ID())
	assert.Equal(t, "new2", entries[1].ID())
}

func TestGallery_FetchFailureFallsBackToClassic(t *testing.T) {
	g := NewGallery(ClassicTemplates(), 80)
	gen := g.Begin()
	g.Apply(gen, published("m1"), nil)

	_, err := g.Refresh(context.Background(), func(context.Context) ([]Managed, error) {
		return nil, errors.New("boom")
	})

	assert.Error(t, err)
	entries := g.Entries()
	require.Len(t, entries, len(ClassicTemplates()))
	for _, e := range entries {
		assert.Equal(t, OriginClassic, e.Origin)
	}
	d, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, OriginClassic, d.Origin)
}

func TestGallery_Select(t *testing.T) {
	g := NewGallery(ClassicTemplates(), 80)

	assert.True(t, g.Select(Ref{OriginClassic, "classic-003"}))
	assert.False(t, g.Select(Ref{OriginManaged, "classic-003"}))

	d, _ := g.Selected()
	assert.Equal(t, "classic-003", d.ID())
}

func TestGallery_ConcurrentRefresh(t *testing.T) {
	g := NewGallery(ClassicTemplates(), 80)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = g.Refresh(context.Background(), func(context.Context) ([]Managed, error) {
				return published(fmt.Sprintf("m%d", i)), nil
			})
		}(i)
	}
	wg.Wait()

	assert.Len(t, g.Entries(), 1+len(ClassicTemplates()))
}

package card

import (
	"context"
	"sync"
)

const DefaultPageSize = 80

// Ref identifies a catalog entry. The origin is explicit so managed and
// classic ids never need to be told apart by their text.
type Ref struct {
	Origin Origin `json:"origin"`
	ID     string `json:"id"`
}

func (d DesignConfig) Ref() Ref {
	return Ref{Origin: d.Origin, ID: d.ID()}
}

// Compose builds the visible catalog: published managed templates first, in
// the given order, then the classic ones.
func Compose(managed []Managed, classic []Classic) []DesignConfig {
	out := make([]DesignConfig, 0, len(managed)+len(classic))
	for _, m := range managed {
		if m.Status != StatusPublished {
			continue
		}
		out = append(out, FromManaged(m))
	}
	for _, c := range classic {
		out = append(out, FromClassic(c))
	}
	return out
}

// DefaultSelection prefers the first managed entry, then the first classic one.
func DefaultSelection(entries []DesignConfig) (DesignConfig, bool) {
	for _, e := range entries {
		if e.Origin == OriginManaged {
			return e, true
		}
	}
	for _, e := range entries {
		if e.Origin == OriginClassic {
			return e, true
		}
	}
	return DesignConfig{}, false
}

type Page struct {
	Index int            `json:"page"`
	Size  int            `json:"size"`
	Total int            `json:"total"`
	Pages int            `json:"pages"`
	Items []DesignConfig `json:"items"`
}

// Paginate slices entries into fixed-size pages. Out of range indexes give an
// empty page; size <= 0 uses DefaultPageSize.
func Paginate(entries []DesignConfig, size, index int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page{Index: index, Size: size, Total: len(entries), Items: []DesignConfig{}}
	p.Pages = len(entries) / size
	if len(entries)%size != 0 {
		p.Pages++
	}
	if index < 0 || index >= p.Pages {
		return p
	}
	start := index * size
	end := start + size
	if end > len(entries) {
		end = len(entries)
	}
	p.Items = append(p.Items, entries[start:end]...)
	return p
}

// Fetcher loads managed templates from wherever they live.
type Fetcher func(ctx context.Context) ([]Managed, error)

// Gallery is the catalog state behind a template picker. Refreshes may
// overlap; each one takes a generation number and only the latest issued
// generation may replace the managed list.
type Gallery struct {
	mu         sync.Mutex
	classic    []Classic
	managed    []Managed
	pageSize   int
	page       int
	selected   Ref
	generation uint64
}

func NewGallery(classic []Classic, pageSize int) *Gallery {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	g := &Gallery{classic: classic, pageSize: pageSize}
	if d, ok := DefaultSelection(Compose(nil, classic)); ok {
		g.selected = d.Ref()
	}
	return g
}

// Begin issues a new request generation.
func (g *Gallery) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	return g.generation
}

// Apply installs the result of request gen. It reports false and changes
// nothing when a newer request has been issued since. A failed fetch leaves
// the catalog with classic entries only.
func (g *Gallery) Apply(gen uint64, managed []Managed, err error) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		return false
	}
	if err != nil {
		managed = nil
	}

	published := make([]Managed, 0, len(managed))
	for _, m := range managed {
		if m.Status == StatusPublished {
			published = append(published, m)
		}
	}

	if len(published) != len(g.managed) {
		g.page = 0
		if len(published) > 0 && g.selected.Origin != OriginManaged {
			g.selected = Ref{Origin: OriginManaged, ID: published[0].ID}
		}
	}
	g.managed = published

	if !g.containsLocked(g.selected) {
		g.selected = Ref{}
		if d, ok := DefaultSelection(Compose(g.managed, g.classic)); ok {
			g.selected = d.Ref()
		}
	}
	return true
}

// Refresh fetches and applies in one step.
func (g *Gallery) Refresh(ctx context.Context, fetch Fetcher) (bool, error) {
	gen := g.Begin()
	managed, err := fetch(ctx)
	return g.Apply(gen, managed, err), err
}

func (g *Gallery) Entries() []DesignConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Compose(g.managed, g.classic)
}

// Page returns the current page of the catalog.
func (g *Gallery) Page() Page {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Paginate(Compose(g.managed, g.classic), g.pageSize, g.page)
}

func (g *Gallery) SetPage(index int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index < 0 {
		index = 0
	}
	g.page = index
}

// Select marks ref as the chosen design. Unknown refs are ignored.
func (g *Gallery) Select(ref Ref) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.containsLocked(ref) {
		return false
	}
	g.selected = ref
	return true
}

func (g *Gallery) Selected() (DesignConfig, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range Compose(g.managed, g.classic) {
		if e.Ref() == g.selected {
			return e, true
		}
	}
	return DesignConfig{}, false
}

func (g *Gallery) containsLocked(ref Ref) bool {
	switch ref.Origin {
	case OriginManaged:
		for _, m := range g.managed {
			if m.ID == ref.ID {
				return true
			}
		}
	case OriginClassic:
		for _, c := range g.classic {
			if c.ID == ref.ID {
				return true
			}
		}
	}
	return false
}

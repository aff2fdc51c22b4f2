package service

import (
	"context"

	"github.com/avvvet/cardcraft-services/internal/card"
	log "github.com/sirupsen/logrus"
)

// CatalogView is one page of the composed catalog.
type CatalogView struct {
	card.Page
	Selected *card.DesignConfig `json:"selected,omitempty"`
	Degraded bool               `json:"degraded,omitempty"` // managed templates could not be loaded
}

// CatalogService serves the composed catalog. Overlapping requests refresh
// one shared gallery; only the newest fetch is applied.
type CatalogService struct {
	gallery  *card.Gallery
	fetch    card.Fetcher
	pageSize int
}

func NewCatalogService(fetch card.Fetcher, pageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = card.DefaultPageSize
	}
	return &CatalogService{
		gallery:  card.NewGallery(card.ClassicTemplates(), pageSize),
		fetch:    fetch,
		pageSize: pageSize,
	}
}

// Page refreshes the managed templates and returns page index of the catalog.
// A failed fetch is logged and the classic entries are still served.
func (s *CatalogService) Page(ctx context.Context, index, size int) CatalogView {
	if size <= 0 {
		size = s.pageSize
	}

	// Only the stale guard of the shared gallery is used here; page and
	// selection come from each request.
	view := CatalogView{}
	if _, err := s.gallery.Refresh(ctx, s.fetch); err != nil {
		log.Errorf("catalog fetch failed, serving classic templates only: %v", err)
		view.Degraded = true
	}

	entries := s.gallery.Entries()
	view.Page = card.Paginate(entries, size, index)
	if d, ok := card.DefaultSelection(entries); ok {
		view.Selected = &d
	}
	return view
}

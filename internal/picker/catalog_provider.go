package picker

import (
	"context"

	"github.com/runger/fitcue/internal/catalog"
)

// CatalogProvider lists catalog entries whose name contains the query.
type CatalogProvider struct {
	catalog *catalog.Catalog
}

var _ Provider = (*CatalogProvider)(nil)

// NewCatalogProvider creates a provider over c.
func NewCatalogProvider(c *catalog.Catalog) *CatalogProvider {
	return &CatalogProvider{catalog: c}
}

// Fetch returns matching entries, or the whole catalog for an empty query.
func (p *CatalogProvider) Fetch(_ context.Context, req Request) (Response, error) {
	var entries []catalog.Entry
	if req.Query == "" {
		entries = p.catalog.Entries()
	} else {
		entries = p.catalog.Search(req.Query)
	}
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{
			Value:  ValidateUTF8(StripANSI(e.Name)),
			Detail: e.Category + " · " + string(e.Type),
		})
	}
	return Response{RequestID: req.RequestID, Items: items}, nil
}

package handlers

import (
	"net/http"

	"it-helpdesk/pkg/importer"
)

// AssetsHandler renders the imported assets.
type AssetsHandler struct {
	Store  AssetStore
	Schema importer.Schema
	Views  *Views
}

// AssetsPage is the view model for the asset table.
type AssetsPage struct {
	Labels []string
	Rows   [][]string
}

// NewAssetsHandler creates a new assets handler
func NewAssetsHandler(store AssetStore, schema importer.Schema, views *Views) *AssetsHandler {
	return &AssetsHandler{Store: store, Schema: schema, Views: views}
}

// ListAssets renders every asset in insertion order, one column per schema field.
func (h *AssetsHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets := h.Store.Assets()

	page := AssetsPage{
		Labels: h.Schema.Labels(),
		Rows:   make([][]string, 0, len(assets)),
	}
	for _, a := range assets {
		page.Rows = append(page.Rows, h.Schema.Values(importer.Record(a)))
	}

	h.Views.Render(w, http.StatusOK, "assets", page)
}

package handler

import (
	"net/http"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/menu"
	"github.com/go-chi/chi/v5"
)

// MenuHandler serves the catalog and customization schema to the order screen.
type MenuHandler struct {
	catalog *menu.Catalog
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(catalog *menu.Catalog) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.List)
	r.Get("/menu/{category}", h.Get)
}

// --- Request / Response types ---

type menuCategoryResponse struct {
	ID         menu.Category    `json:"id"`
	Name       string           `json:"name"`
	Items      []menu.Item      `json:"items"`
	Attributes []menu.Attribute `json:"attributes"`
}

func (h *MenuHandler) category(c menu.Category) menuCategoryResponse {
	return menuCategoryResponse{
		ID:         c,
		Name:       c.DisplayName(),
		Items:      h.catalog.Items(c),
		Attributes: c.Attributes(),
	}
}

// --- Handlers ---

// List returns every category with its items and options.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	cats := menu.Categories()
	resp := make([]menuCategoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = h.category(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one category.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := menu.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown category"})
		return
	}
	writeJSON(w, http.StatusOK, h.category(c))
}

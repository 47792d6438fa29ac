package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/menu"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/metrics"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/middleware"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/order"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ComposerSource hands out the caller's order composer.
// Satisfied by *order.Registry.
type ComposerSource interface {
	Get(s auth.Session) *order.Composer
}

// CartHandler exposes the caller's in-progress order.
type CartHandler struct {
	composers   ComposerSource
	catalog     *menu.Catalog
	metrics     *metrics.Metrics
	sinkTimeout time.Duration
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(composers ComposerSource, catalog *menu.Catalog, m *metrics.Metrics, sinkTimeout time.Duration) *CartHandler {
	return &CartHandler{
		composers:   composers,
		catalog:     catalog,
		metrics:     m,
		sinkTimeout: sinkTimeout,
	}
}

// RegisterRoutes registers cart endpoints.
// Expected to be mounted under /employee/orders.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Reset)
		r.Patch("/customer", h.SetCustomer)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{lineID}/quantity", h.UpdateQuantity)
		r.Patch("/items/{lineID}/customizations", h.UpdateCustomization)
		r.Delete("/items/{lineID}", h.RemoveItem)
		r.Post("/submit", h.Submit)
	})
}

// --- Request / Response types ---

type addItemRequest struct {
	Category string `json:"category"`
	ItemID   int    `json:"item_id"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

type updateCustomizationRequest struct {
	AttributeID string `json:"attribute_id"`
	Value       string `json:"value"`
}

type customerRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type submitRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type lineResponse struct {
	LineID         int64             `json:"line_id"`
	MenuItemID     int               `json:"menu_item_id"`
	Category       menu.Category     `json:"category"`
	Name           string            `json:"name"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations"`
	LineTotal      decimal.Decimal   `json:"line_total"`
}

type cartResponse struct {
	State         order.State     `json:"state"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Lines         []lineResponse  `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}

type submitResponse struct {
	Receipt order.Receipt `json:"receipt"`
	Cart    cartResponse  `json:"cart"`
}

func toLineResponse(l order.LineItem) lineResponse {
	return lineResponse{
		LineID:         l.LineID,
		MenuItemID:     l.MenuItemID,
		Category:       l.Category,
		Name:           l.Name,
		UnitPrice:      l.UnitPrice,
		Quantity:       l.Quantity,
		Customizations: l.Customizations,
		LineTotal:      l.LineTotal(),
	}
}

func toCartResponse(o order.Order) cartResponse {
	resp := cartResponse{
		State:         o.State(),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Lines:         make([]lineResponse, len(o.Lines)),
		Total:         o.Total,
	}
	for i, l := range o.Lines {
		resp.Lines[i] = toLineResponse(l)
	}
	return resp
}

// --- Handlers ---

// Get returns the cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(c.Snapshot()))
}

// Reset empties the cart and clears the customer details.
func (h *CartHandler) Reset(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}
	if !c.Reset() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": order.ErrSubmitInProgress.Error()})
		return
	}
	h.metrics.Cart(metrics.CartReset)
	writeJSON(w, http.StatusOK, toCartResponse(c.Snapshot()))
}

// SetCustomer stores the customer details typed so far. They are checked
// only on submit.
func (h *CartHandler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	c.SetCustomer(req.CustomerName, req.CustomerPhone)
	writeJSON(w, http.StatusOK, toCartResponse(c.Snapshot()))
}

// AddItem appends a new line for a menu item with default customizations.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	cat, err := menu.ParseCategory(req.Category)
	if err != nil {
		h.metrics.Cart(metrics.CartInvalidInput)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}
	item, err := h.catalog.Lookup(cat, req.ItemID)
	if err != nil {
		h.metrics.Cart(metrics.CartInvalidInput)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}

	c.AddItem(item)
	h.metrics.Cart(metrics.CartAdd)
	writeJSON(w, http.StatusCreated, toCartResponse(c.Snapshot()))
}

// UpdateQuantity adds delta to a line's quantity, keeping it between one and
// order.MaxQuantity. An unknown line leaves the cart unchanged.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}
	lineID, ok := lineIDParam(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Delta > order.MaxQuantity || req.Delta < -order.MaxQuantity {
		h.metrics.Cart(metrics.CartInvalidInput)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity change out of range"})
		return
	}

	if c.UpdateQuantity(lineID, req.Delta) {
		h.metrics.Cart(metrics.CartQuantity)
	}
	writeJSON(w, http.StatusOK, toCartResponse(c.Snapshot()))
}

// UpdateCustomization sets one attribute on a line.
func (h *CartHandler) UpdateCustomization(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}
	lineID, ok := lineIDParam(w, r)
	if !ok {
		return
	}

	var req updateCustomizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := c.UpdateCustomization(lineID, req.AttributeID, req.Value); err != nil {
		if errors.Is(err, order.ErrUnknownAttribute) || errors.Is(err, order.ErrInvalidValue) {
			h.metrics.Cart(metrics.CartInvalidInput)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		slog.Error("update customization", "line_id", lineID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.metrics.Cart(metrics.CartCustomize)
	writeJSON(w, http.StatusOK, toCartResponse(c.Snapshot()))
}

// RemoveItem deletes a line. Removing a missing line is not an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}
	lineID, ok := lineIDParam(w, r)
	if !ok {
		return
	}

	if c.RemoveItem(lineID) {
		h.metrics.Cart(metrics.CartRemove)
	}
	writeJSON(w, http.StatusOK, toCartResponse(c.Snapshot()))
}

// Submit validates the order and hands it to the order sink.
func (h *CartHandler) Submit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.composer(w, r)
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// A client disconnect must not cut the sink call short.
	ctx, cancel := detached(r, h.sinkTimeout)
	defer cancel()

	start := time.Now()
	receipt, err := c.Submit(ctx, req.CustomerName, req.CustomerPhone)

	var (
		verr    *order.ValidationError
		failure *order.SinkFailure
	)
	switch {
	case err == nil:
		h.metrics.SinkLatency.Observe(time.Since(start).Seconds())
		h.metrics.Submission(metrics.SubmitPlaced)
		writeJSON(w, http.StatusCreated, submitResponse{
			Receipt: receipt,
			Cart:    toCartResponse(c.Snapshot()),
		})
	case errors.As(err, &verr):
		h.metrics.Submission(metrics.SubmitValidation)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  verr.Description(),
			"title":  verr.Title(),
			"reason": verr.Reason.String(),
		})
	case errors.Is(err, order.ErrSubmitInProgress):
		h.metrics.Submission(metrics.SubmitInProgress)
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &failure):
		h.metrics.SinkLatency.Observe(time.Since(start).Seconds())
		h.metrics.Submission(metrics.SubmitSinkFailure)
		slog.Error("order submission failed", "user_id", c.Session().UserID, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": failure.Reason})
	default:
		slog.Error("order submission", "user_id", c.Session().UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// --- Helpers ---

func (h *CartHandler) composer(w http.ResponseWriter, r *http.Request) (*order.Composer, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return nil, false
	}
	return h.composers.Get(session), true
}

func lineIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid line ID"})
		return 0, false
	}
	return id, true
}

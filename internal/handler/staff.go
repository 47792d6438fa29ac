package handler

import (
	"net/http"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/dashboard"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/inventory"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RecentOrderLister is satisfied by *dashboard.RecentOrders.
type RecentOrderLister interface {
	List() []dashboard.RecentOrder
}

// DashboardHandler serves the employee home screen.
type DashboardHandler struct {
	tasks  []dashboard.Task
	recent RecentOrderLister
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(tasks []dashboard.Task, recent RecentOrderLister) *DashboardHandler {
	return &DashboardHandler{tasks: tasks, recent: recent}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.Get)
}

// InventoryHandler serves the read-only stock list.
type InventoryHandler struct {
	inv *inventory.Inventory
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inv *inventory.Inventory) *InventoryHandler {
	return &InventoryHandler{inv: inv}
}

func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/inventory", h.List)
}

// --- Request / Response types ---

type dashboardResponse struct {
	Welcome      string                  `json:"welcome"`
	Tasks        []dashboard.Task        `json:"tasks"`
	TaskCounts   dashboard.TaskCounts    `json:"task_counts"`
	RecentOrders []dashboard.RecentOrder `json:"recent_orders"`
}

type inventoryItemResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	Threshold   int    `json:"threshold"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated"`
}

type inventoryResponse struct {
	Items   []inventoryItemResponse `json:"items"`
	Summary inventory.Summary       `json:"summary"`
}

// --- Handlers ---

// Get returns today's tasks and the latest orders.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, dashboardResponse{
		Welcome:      session.Name,
		Tasks:        h.tasks,
		TaskCounts:   dashboard.CountTasks(h.tasks),
		RecentOrders: h.recent.List(),
	})
}

// List returns items matching ?q= along with whole-inventory counts.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.inv.Search(r.URL.Query().Get("q"))

	resp := inventoryResponse{
		Items:   make([]inventoryItemResponse, len(items)),
		Summary: h.inv.Summary(),
	}
	for i, it := range items {
		resp.Items[i] = inventoryItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Category:    it.Category,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Threshold:   it.Threshold,
			Status:      it.Status(),
			LastUpdated: it.LastUpdated.Format(time.DateOnly),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

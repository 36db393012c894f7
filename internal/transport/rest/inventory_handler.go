package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/abgdnv/goinventory/internal/search"
	"github.com/abgdnv/goinventory/internal/service"
	"github.com/abgdnv/goinventory/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type InventoryHandler struct {
	service  service.InventoryService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewInventoryHandler creates a new instance of InventoryHandler with the provided service.
func NewInventoryHandler(service service.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "inventory_rest"),
	}
}

// RegisterRoutes registers the HTTP routes for inventories.
func (h *InventoryHandler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventories", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/paged", h.FindAllPaged)
		r.Get("/product/{productId}", h.FindByProductID)

		r.Route("/search", func(r chi.Router) {
			r.Get("/", h.Search)
			r.Get("/stock-range", h.FindByStockRange)
			r.Get("/minimum-stock", h.FindByMinimumStock)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
			r.Patch("/stock", h.UpdateStockLevel)
		})
	})
}

// FindAll retrieves a list of all inventory records.
func (h *InventoryHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all inventories")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch inventories")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved inventory list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindAllPaged retrieves one page of inventory records with totals.
func (h *InventoryHandler) FindAllPaged(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	pageReq, ok := parsePageRequest(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find inventories with pagination", "page", pageReq.Page, "size", pageReq.Size)
	page, err := h.service.FindAllPaged(r.Context(), pageReq)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch inventories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, page)
}

// FindByID retrieves an inventory record by its ID.
func (h *InventoryHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find inventory by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to retrieve inventory with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new inventory record.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req service.InventoryRequestDto
	if !decodeAndValidate(w, r, h.validate, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create inventory")
	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to create inventory")
		return
	}
	mLogger.InfoContext(r.Context(), "Inventory created successfully", "ID", created.ID, "ProductID", created.ProductID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update replaces the supplied fields of an existing inventory record.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var req service.InventoryRequestDto
	if !decodeAndValidate(w, r, h.validate, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update inventory", "ID", id)
	updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to update inventory with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Inventory updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// UpdateStockLevel applies a stock-only mutation taken from the stockLevel
// query parameter.
func (h *InventoryHandler) UpdateStockLevel(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var stockLevel *int32
	if raw := r.URL.Query().Get("stockLevel"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid stockLevel number: %s", raw))
			return
		}
		value32 := int32(value)
		stockLevel = &value32
	}
	mLogger.DebugContext(r.Context(), "Received request to update stock level", "ID", id)
	updated, err := h.service.UpdateStockLevel(r.Context(), id, stockLevel)
	if err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to update stock level for inventory with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Stock level updated successfully", "ID", updated.ID, "NewStock", updated.CurrentStock)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes an inventory record by its ID.
func (h *InventoryHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete inventory", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to delete inventory with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Inventory deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// Search combines all supplied criteria into a single filter.
// Absent parameters do not narrow the result.
func (h *InventoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID, ok := queryInt64(w, r, mLogger, "productId")
	if !ok {
		return
	}
	minStock, ok := queryInt32(w, r, mLogger, "minStock")
	if !ok {
		return
	}
	maxStock, ok := queryInt32(w, r, mLogger, "maxStock")
	if !ok {
		return
	}
	criteria := search.InventoryCriteria{
		ProductID: productID,
		MinStock:  minStock,
		MaxStock:  maxStock,
	}
	mLogger.DebugContext(r.Context(), "Received advanced inventory search request")
	list, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search inventories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByProductID retrieves inventory records by the referenced product ID.
func (h *InventoryHandler) FindByProductID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	raw := r.PathValue("productId")
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid product ID: %s", raw))
		return
	}
	list, err := h.service.FindByProductID(r.Context(), productID)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search inventories by product")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *InventoryHandler) FindByStockRange(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	minStock, ok := queryInt32(w, r, mLogger, "minStock")
	if !ok {
		return
	}
	maxStock, ok := queryInt32(w, r, mLogger, "maxStock")
	if !ok {
		return
	}
	list, err := h.service.FindByStockRange(r.Context(), minStock, maxStock)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search inventories by stock range")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *InventoryHandler) FindByMinimumStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	minStock, ok := web.ParseValidateGte(r, w, mLogger, "minStock", 0)
	if !ok {
		return
	}
	list, err := h.service.FindByMinimumStock(r.Context(), minStock)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search inventories by minimum stock")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *InventoryHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}

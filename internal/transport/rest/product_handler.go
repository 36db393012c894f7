package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/goinventory/internal/model"
	"github.com/abgdnv/goinventory/internal/search"
	"github.com/abgdnv/goinventory/internal/service"
	"github.com/abgdnv/goinventory/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new instance of ProductHandler with the provided service.
func NewProductHandler(service service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "product_rest"),
	}
}

// RegisterRoutes registers the HTTP routes for products.
func (h *ProductHandler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/paged", h.FindAllPaged)

		r.Route("/search", func(r chi.Router) {
			r.Get("/", h.Search)
			r.Get("/active", h.FindActive)
			r.Get("/name", h.FindByName)
			r.Get("/category", h.FindByCategory)
			r.Get("/keyword", h.FindByKeyword)
			r.Get("/status", h.FindByStatus)
			r.Get("/price-range", h.FindByPriceRange)
			r.Get("/category-availability", h.FindByCategoryAndAvailability)
			r.Get("/available-above-price", h.FindAvailableAbovePrice)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
			r.Patch("/status", h.UpdateStatus)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll retrieves a list of all products.
func (h *ProductHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindAllPaged retrieves one page of products with totals.
func (h *ProductHandler) FindAllPaged(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	pageReq, ok := parsePageRequest(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find products with pagination", "page", pageReq.Page, "size", pageReq.Size)
	page, err := h.service.FindAllPaged(r.Context(), pageReq)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, page)
}

// FindByID retrieves a product by its ID.
func (h *ProductHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req service.ProductRequestDto
	if !decodeAndValidate(w, r, h.validate, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "name", req.Name)
	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update replaces the supplied fields of an existing product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var req service.ProductRequestDto
	if !decodeAndValidate(w, r, h.validate, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// UpdateStatus applies a status-only mutation.
func (h *ProductHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	status := model.ProductStatus(r.URL.Query().Get("status"))
	mLogger.DebugContext(r.Context(), "Received request to update product status", "ID", id, "status", status)
	updated, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to update status for product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product status updated successfully", "ID", updated.ID, "Status", updated.Status)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *ProductHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// Search combines all supplied criteria into a single filter.
// Absent parameters do not narrow the result.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	minPrice, ok := queryFloat(w, r, mLogger, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(w, r, mLogger, "maxPrice")
	if !ok {
		return
	}
	availability, ok := queryBool(w, r, mLogger, "availability")
	if !ok {
		return
	}
	active, ok := queryBool(w, r, mLogger, "active")
	if !ok {
		return
	}
	criteria := search.ProductCriteria{
		Keyword:      r.URL.Query().Get("keyword"),
		Name:         r.URL.Query().Get("name"),
		Category:     r.URL.Query().Get("category"),
		Status:       model.ProductStatus(r.URL.Query().Get("status")),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Availability: availability,
		Active:       active,
	}
	mLogger.DebugContext(r.Context(), "Received advanced product search request")
	list, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindActive(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindActive(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch active products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindByName(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search products by name")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindByCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search products by category")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindByKeyword(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindByKeyword(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search products by keyword")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindByStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	status := model.ProductStatus(r.URL.Query().Get("status"))
	list, err := h.service.FindByStatus(r.Context(), status)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search products by status")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindByPriceRange(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	minPrice, ok := queryFloat(w, r, mLogger, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(w, r, mLogger, "maxPrice")
	if !ok {
		return
	}
	list, err := h.service.FindByPriceRange(r.Context(), minPrice, maxPrice)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search products by price range")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindByCategoryAndAvailability(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	availability, ok := queryBool(w, r, mLogger, "availability")
	if !ok {
		return
	}
	list, err := h.service.FindByCategoryAndAvailability(r.Context(), r.URL.Query().Get("category"), availability)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search products by category and availability")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *ProductHandler) FindAvailableAbovePrice(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	minPrice, ok := queryFloat(w, r, mLogger, "minPrice")
	if !ok {
		return
	}
	list, err := h.service.FindAvailableAbovePrice(r.Context(), minPrice)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to search available products above price")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// HealthCheck is a simple health check endpoint.
func (h *ProductHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *ProductHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}

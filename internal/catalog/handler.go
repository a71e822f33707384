package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vigie-status/vigie/internal/domain"
	"github.com/vigie-status/vigie/internal/pkg/httputil"
)

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers the admin catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.ListServices)
		r.Post("/", h.CreateService)
		r.Get("/{id}", h.GetService)
		r.Patch("/{id}", h.UpdateService)
		r.Delete("/{id}", h.DeleteService)
	})
}

// RegisterPublicRoutes registers the public catalog routes.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/services", h.ListServices)
	r.Get("/services/{id}", h.GetService)
}

// pathID returns the {id} path parameter after checking its shape. Rows are
// keyed by uuid, so a malformed value can never match one and reads as
// absent.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := uuid.Validate(id); err != nil {
		httputil.Error(w, http.StatusNotFound, ErrServiceNotFound.Error())
		return "", false
	}
	return id, true
}

// CreateServiceRequest represents the request body for creating a service.
type CreateServiceRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Slug string `json:"slug" validate:"omitempty,min=1,max=255"`
	URL  string `json:"url" validate:"omitempty,url"`
}

// ToDomain converts the request to a domain model.
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	return &domain.Service{
		Name: r.Name,
		Slug: r.Slug,
		URL:  r.URL,
	}
}

// UpdateServiceRequest represents the request body for updating a service.
type UpdateServiceRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Slug string `json:"slug" validate:"omitempty,min=1,max=255"`
	URL  string `json:"url" validate:"omitempty,url"`
}

// CreateService handles POST /services request.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	service := req.ToDomain()
	if err := h.service.CreateService(r.Context(), service); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, service)
}

// GetService handles GET /services/{id} request.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	service, err := h.service.GetService(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, service)
}

// ListServices handles GET /services request.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, services)
}

// UpdateService handles PATCH /services/{id} request.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.service.GetService(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var req UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	existing.Name = req.Name
	existing.Slug = req.Slug
	existing.URL = req.URL

	if err := h.service.UpdateService(r.Context(), existing); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, existing)
}

// DeleteService handles DELETE /services/{id} request.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteService(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		httputil.Error(w, http.StatusBadRequest, verr.Error())
		return
	}

	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrServiceNotFound, Status: http.StatusNotFound},
		{Error: ErrSlugExists, Status: http.StatusConflict},
		{Error: ErrServiceInUse, Status: http.StatusConflict},
	})
}

package interventions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vigie-status/vigie/internal/domain"
	"github.com/vigie-status/vigie/internal/pkg/httputil"
)

// Handler handles HTTP requests for the interventions module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new interventions handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers the admin intervention routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/interventions", func(r chi.Router) {
		r.Get("/", h.ListInterventions)
		r.Post("/", h.CreateIntervention)
		r.Get("/{id}", h.GetIntervention)
		r.Patch("/{id}", h.UpdateIntervention)
		r.Delete("/{id}", h.DeleteIntervention)
		r.Post("/{id}/comments", h.AddComment)
		r.Get("/{id}/comments", h.ListComments)
	})
}

// pathID returns the {id} path parameter after checking its shape. Rows are
// keyed by uuid, so a malformed value can never match one and reads as
// absent.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := uuid.Validate(id); err != nil {
		httputil.Error(w, http.StatusNotFound, ErrInterventionNotFound.Error())
		return "", false
	}
	return id, true
}

// CreateInterventionRequest represents the request body for creating an
// intervention.
type CreateInterventionRequest struct {
	Title                    string    `json:"title" validate:"required,min=1,max=255"`
	Description              string    `json:"description"`
	StartAt                  time.Time `json:"start_at" validate:"required"`
	EndAt                    time.Time `json:"end_at" validate:"required"`
	Severity                 string    `json:"severity" validate:"required,oneof=performance_issue partial_outage full_outage"`
	EstimatedDurationMinutes *int64    `json:"estimated_duration_minutes" validate:"omitempty,min=1"`
	ServiceIDs               []string  `json:"service_ids" validate:"required,min=1,dive,uuid"`
}

// ToDomain converts the request to a domain model.
func (r *CreateInterventionRequest) ToDomain() *domain.Intervention {
	return &domain.Intervention{
		Title:                    r.Title,
		Description:              r.Description,
		StartAt:                  r.StartAt,
		EndAt:                    r.EndAt,
		Severity:                 domain.Severity(r.Severity),
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		ServiceIDs:               r.ServiceIDs,
	}
}

// UpdateInterventionRequest represents the request body for updating an
// intervention.
type UpdateInterventionRequest struct {
	Title                    string    `json:"title" validate:"required,min=1,max=255"`
	Description              string    `json:"description"`
	StartAt                  time.Time `json:"start_at" validate:"required"`
	EndAt                    time.Time `json:"end_at" validate:"required"`
	Severity                 string    `json:"severity" validate:"required,oneof=performance_issue partial_outage full_outage"`
	EstimatedDurationMinutes *int64    `json:"estimated_duration_minutes" validate:"omitempty,min=1"`
	ServiceIDs               []string  `json:"service_ids" validate:"required,min=1,dive,uuid"`
}

// AddCommentRequest represents the request body for adding a comment.
type AddCommentRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// CreateIntervention handles POST /interventions request.
func (h *Handler) CreateIntervention(w http.ResponseWriter, r *http.Request) {
	var req CreateInterventionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	iv := req.ToDomain()
	if err := h.service.CreateIntervention(r.Context(), iv); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, iv)
}

// GetIntervention handles GET /interventions/{id} request.
func (h *Handler) GetIntervention(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	iv, err := h.service.GetIntervention(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, iv)
}

// ListInterventions handles GET /interventions request.
func (h *Handler) ListInterventions(w http.ResponseWriter, r *http.Request) {
	ivs, err := h.service.ListInterventions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, ivs)
}

// UpdateIntervention handles PATCH /interventions/{id} request.
func (h *Handler) UpdateIntervention(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.service.GetIntervention(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var req UpdateInterventionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.StartAt = req.StartAt
	existing.EndAt = req.EndAt
	existing.Severity = domain.Severity(req.Severity)
	existing.EstimatedDurationMinutes = req.EstimatedDurationMinutes
	existing.ServiceIDs = req.ServiceIDs

	if err := h.service.UpdateIntervention(r.Context(), existing); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, existing)
}

// DeleteIntervention handles DELETE /interventions/{id} request.
func (h *Handler) DeleteIntervention(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteIntervention(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddComment handles POST /interventions/{id}/comments request.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	comment, err := h.service.AddComment(r.Context(), id, req.Message)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, comment)
}

// ListComments handles GET /interventions/{id}/comments request.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	comments, err := h.service.ListComments(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, comments)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		httputil.Error(w, http.StatusBadRequest, verr.Error())
		return
	}

	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrInterventionNotFound, Status: http.StatusNotFound},
		{Error: ErrCommentNotFound, Status: http.StatusNotFound},
		{Error: ErrAffectedServiceNotFound, Status: http.StatusBadRequest},
	})
}

package statuspage

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vigie-status/vigie/internal/pkg/httputil"
)

// Handler handles the public read-only status endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new status page handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public status routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.GetOverview)
	r.Get("/status/global", h.GetGlobalStatus)
	r.Get("/services/{id}/status", h.GetServiceStatus)
	r.Route("/interventions", func(r chi.Router) {
		r.Get("/ongoing", h.ListOngoing)
		r.Get("/upcoming", h.ListUpcoming)
		r.Get("/past", h.ListPast)
		r.Get("/{id}", h.GetIntervention)
	})
}

// GetOverview handles GET /status request.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, overview)
}

// GetGlobalStatus handles GET /status/global request.
func (h *Handler) GetGlobalStatus(w http.ResponseWriter, r *http.Request) {
	global, err := h.service.GlobalStatus(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, global)
}

// GetServiceStatus handles GET /services/{id}/status request.
func (h *Handler) GetServiceStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.ServiceStatus(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, view)
}

// ListOngoing handles GET /interventions/ongoing request.
func (h *Handler) ListOngoing(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.OngoingInterventions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, views)
}

// ListUpcoming handles GET /interventions/upcoming request.
func (h *Handler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.UpcomingInterventions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, views)
}

// ListPast handles GET /interventions/past request.
func (h *Handler) ListPast(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.PastInterventions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, views)
}

// GetIntervention handles GET /interventions/{id} request.
func (h *Handler) GetIntervention(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.Intervention(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, detail)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrServiceNotFound, Status: http.StatusNotFound},
		{Error: ErrInterventionNotFound, Status: http.StatusNotFound},
	})
}

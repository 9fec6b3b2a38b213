package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/puntopos/puntopos-api/internal/pkg/errorhandler"
	"github.com/puntopos/puntopos-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates dashboard handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns dashboard routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/stats", h.GetStats)
	r.Get("/recent-sales", h.GetRecentSales)
	r.Get("/sales-report", h.GetSalesReport)

	return r
}

// GetStats handles GET /dashboard/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "DASHBOARD_STATS_FAILED", "Failed to get dashboard stats", err)
		return
	}

	response.OK(w, stats)
}

// GetRecentSales handles GET /dashboard/recent-sales?limit=
func (h *Handler) GetRecentSales(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	sales, err := h.repo.GetRecentSales(r.Context(), limit)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "DASHBOARD_RECENT_FAILED", "Failed to get recent sales", err)
		return
	}

	response.OK(w, sales)
}

// GetSalesReport handles GET /dashboard/sales-report?from=&to=
func (h *Handler) GetSalesReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := q.Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := q.Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}
	if to.Before(from) {
		response.BadRequest(w, "Date range is inverted")
		return
	}

	report, err := h.repo.GetSalesReport(r.Context(), from, to)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "DASHBOARD_REPORT_FAILED", "Failed to get sales report", err)
		return
	}

	response.OK(w, report)
}

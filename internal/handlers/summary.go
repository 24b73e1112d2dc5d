package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/expense-backend/internal/aggregate"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/middleware"
	"github.com/GregMSThompson/expense-backend/internal/response"
)

type summaryService interface {
	GetSummary(ctx context.Context, uid string, q dto.SummaryQuery) (aggregate.Summary, error)
}

type summaryHandlers struct {
	ResponseHandler response.ResponseHandler
	SummarySvc      summaryService
}

func NewSummaryHandlers(deps *Deps) *summaryHandlers {
	return &summaryHandlers{
		ResponseHandler: deps.ResponseHandler,
		SummarySvc:      deps.SummarySvc,
	}
}

func (h *summaryHandlers) SummaryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSummary)
	return r
}

func (h *summaryHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.SummaryQuery{
		AccountID: q.Get("account"),
		MonthYear: q.Get("month"),
	}
	if v := q.Get("years"); v != "" {
		years, err := strconv.Atoi(v)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("years must be a whole number"))
			return
		}
		query.SCurveYears = years
	}

	uid := middleware.UID(r.Context())
	summary, err := h.SummarySvc.GetSummary(r.Context(), uid, query)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

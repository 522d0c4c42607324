/*
handlers.go - HTTP handlers for the attendance API

PURPOSE:
  Exposes the timesheet service over REST. Handles HTTP request/response
  and JSON serialization; all domain behavior lives in the service.

ERROR MAPPING (per the fallback policy):
  - Advisory degradations (work rule, holidays) ride along inside a 200
    month-view payload; the client renders them as dismissible warnings.
  - An attendance fetch failure is fatal: 502 with no partial data.
  - Validation problems in the request itself: 400.

SEE ALSO:
  - dto.go: request/response data structures
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kk0ga/employee-time-attendance/attendance"
	"github.com/kk0ga/employee-time-attendance/timesheet"
)

// Handler holds the dependencies of the HTTP layer.
type Handler struct {
	Service *timesheet.Service
	Logger  *zap.Logger
}

// NewHandler creates a handler backed by the given service.
func NewHandler(svc *timesheet.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Service: svc, Logger: logger}
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// =============================================================================
// PUNCHES
// =============================================================================

func (h *Handler) CreatePunch(w http.ResponseWriter, r *http.Request) {
	var req createPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := h.Service.Punch(r.Context(), userIDFrom(r.Context()), attendance.PunchType(req.Type), req.Note)
	if err != nil {
		if attendance.IsUnavailable(err) {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) ListPunches(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = attendance.NowClock()
	}
	if !dateRe.MatchString(date) {
		h.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	status, err := h.Service.Status(r.Context(), userIDFrom(r.Context()), date)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

// =============================================================================
// MONTH VIEW & CORRECTIONS
// =============================================================================

func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.yearMonthParams(w, r)
	if !ok {
		return
	}

	view, err := h.Service.MonthView(r.Context(), userIDFrom(r.Context()), year, month)
	if err != nil {
		// Attendance unavailability is the one fatal upstream failure:
		// no partial data, the client shows a retryable error state.
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toMonthViewResponse(view))
}

func (h *Handler) SetCategory(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !dateRe.MatchString(date) {
		h.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var req setCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.Service.SetWorkCategory(r.Context(), userIDFrom(r.Context()), date, req.WorkCategory); err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// WORK RULE
// =============================================================================

func (h *Handler) GetWorkRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.Service.WorkRule(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rule)
}

func (h *Handler) SaveWorkRule(w http.ResponseWriter, r *http.Request) {
	var draft attendance.WorkRuleDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rule, err := h.Service.SaveWorkRule(r.Context(), userIDFrom(r.Context()), draft)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rule)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) yearMonthParams(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	month, errM := strconv.Atoi(chi.URLParam(r, "month"))
	if errY != nil || errM != nil || year < 1 || month < 1 || month > 12 {
		h.writeError(w, http.StatusBadRequest, "path must be /{year}/{month} with month 1-12")
		return 0, 0, false
	}
	return year, month, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	h.Logger.Error("upstream failure", zap.Error(err))
	h.writeError(w, http.StatusBadGateway, err.Error())
}

/*
handlers.go - HTTP API handlers for the order report engine

PURPOSE:
  Exposes report generation and calendar-settings management over REST.
  Handlers own HTTP request/response and JSON shape; all business logic
  lives in engine/ and report/.

ENDPOINTS:
  Reports:
    POST /api/reports/daily     multipart: file=<xlsx>, date=YYYY-MM-DD
    POST /api/reports/monthly   multipart: file=<xlsx>, month=YYYY-MM
    Both accept ?format=csv for the export collaborator's CSV rendering.

  Calendar settings:
    GET    /api/holidays                 List all entries
    POST   /api/holidays                 Register {date, kind}
    DELETE /api/holidays/{kind}/{date}   Unregister
    POST   /api/holidays/import          Bulk-load a settings JSON document
    POST   /api/holidays/defaults        Seed a year's national holidays

REQUEST FLOW:
  1. Parse HTTP request (multipart upload for reports)
  2. Decode workbook via ingest, normalize via engine
  3. Build the summary via report.Generator
  4. Serialize (JSON or CSV)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed upload, bad date, insufficient rows, bad settings JSON
  - 500: Settings repository failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/order-report-engine/engine"
	"github.com/warp/order-report-engine/export"
	"github.com/warp/order-report-engine/factory"
	"github.com/warp/order-report-engine/ingest"
	"github.com/warp/order-report-engine/report"
)

// maxUploadBytes bounds workbook uploads. The operations workbook is a few
// hundred KB; 20MB leaves room without inviting abuse.
const maxUploadBytes = 20 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Settings engine.SettingsRepository
	Logger   *slog.Logger
}

// NewHandler creates a handler over a settings repository.
func NewHandler(settings engine.SettingsRepository, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Settings: settings, Logger: logger}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GenerateDailyReport builds the daily report for an uploaded workbook.
// POST /api/reports/daily
func (h *Handler) GenerateDailyReport(w http.ResponseWriter, r *http.Request) {
	target := engine.ParseDate(r.FormValue("date"))
	if target.IsZero() {
		writeError(w, http.StatusBadRequest, "invalid or missing date (want YYYY-MM-DD)", nil)
		return
	}
	h.generateReport(w, r, target, engine.ModeDaily)
}

// GenerateMonthlyReport builds the monthly report for an uploaded workbook.
// POST /api/reports/monthly
func (h *Handler) GenerateMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, err := time.Parse("2006-01", r.FormValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing month (want YYYY-MM)", err)
		return
	}
	h.generateReport(w, r, report.MonthOf(month.Year(), month.Month()), engine.ModeMonthly)
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request, target engine.Date, mode engine.Mode) {
	records, ok := h.recordsFromUpload(w, r)
	if !ok {
		return
	}

	gen := report.NewGenerator(h.Settings)
	var summary report.Summary
	if mode == engine.ModeMonthly {
		summary = gen.Monthly(records, target)
	} else {
		summary = gen.Daily(records, target)
	}

	h.Logger.Info("report generated",
		slog.String("type", summary.Type),
		slog.String("target", target.String()),
		slog.Int("total_orders", summary.TotalOrders),
		slog.Int("overtime_orders", summary.OvertimeOrders))

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="report-%s-%s.csv"`, summary.Type, target))
		if err := export.WriteCSV(w, summary); err != nil {
			h.Logger.Error("csv rendering failed", slog.Any("error", err))
		}
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// recordsFromUpload decodes the multipart workbook into normalized records.
// Writes the error response itself and returns ok=false on failure.
func (h *Handler) recordsFromUpload(w http.ResponseWriter, r *http.Request) ([]engine.OrderRecord, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing workbook upload (field 'file')", err)
		return nil, false
	}
	defer file.Close()

	rows, err := ingest.ReadRowsFrom(io.Reader(file))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode workbook", err)
		return nil, false
	}

	records, err := engine.Normalize(rows)
	if err != nil {
		status := http.StatusInternalServerError
		if engine.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "failed to normalize rows", err)
		return nil, false
	}
	return records, true
}

// =============================================================================
// CALENDAR SETTINGS HANDLERS
// =============================================================================

// ListHolidays returns all calendar-settings entries.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Settings.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTOs(entries))
}

// AddHoliday registers a date.
// POST /api/holidays
func (h *Handler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req AddHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := holidayEntry(req.Date, req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.Settings.Add(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(entry))
}

// DeleteHoliday unregisters a date.
// DELETE /api/holidays/{kind}/{date}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	entry, err := holidayEntry(chi.URLParam(r, "date"), chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.Settings.Remove(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportHolidays bulk-loads a settings JSON document.
// POST /api/holidays/import
func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", err)
		return
	}

	entries, err := factory.ParseSettings(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings document", err)
		return
	}

	if err := factory.Seed(r.Context(), h.Settings, entries); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to import settings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(entries)})
}

// AddDefaultHolidays seeds a year's Japanese national holidays.
// POST /api/holidays/defaults
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	var req DefaultHolidaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Year < 1900 || req.Year > 2200 {
		writeError(w, http.StatusBadRequest, "year out of range", nil)
		return
	}

	entries := factory.DefaultPublicHolidays(req.Year)
	if err := factory.Seed(r.Context(), h.Settings, entries); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to seed default holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTOs(entries))
}

func holidayEntry(rawDate, rawKind string) (engine.HolidayDate, error) {
	kind := engine.HolidayKind(rawKind)
	if !kind.Valid() {
		return engine.HolidayDate{}, fmt.Errorf("unknown kind %q", rawKind)
	}
	date := engine.ParseDate(rawDate)
	if date.IsZero() {
		return engine.HolidayDate{}, fmt.Errorf("invalid date %q", rawDate)
	}
	return engine.HolidayDate{Date: date, Kind: kind}, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

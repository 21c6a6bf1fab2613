/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication. Report responses reuse
  report.Summary directly - its field shape is already a stable contract
  consumed structurally by downstream collaborators, and wrapping it here
  would just create a second copy of the same contract to keep in sync.
  Holiday settings get a thin DTO layer.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - report/summary.go: The report response shape
*/
package api

import (
	"github.com/warp/order-report-engine/engine"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// HolidayDTO represents one calendar-settings entry.
type HolidayDTO struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Kind string `json:"kind"` // "public_holiday" | "prohibited_day"
}

// AddHolidayRequest is the request to register a date.
type AddHolidayRequest struct {
	Date string `json:"date"`
	Kind string `json:"kind"`
}

// DefaultHolidaysRequest is the request to seed a year's national holidays.
type DefaultHolidaysRequest struct {
	Year int `json:"year"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toHolidayDTO(entry engine.HolidayDate) HolidayDTO {
	return HolidayDTO{Date: entry.Date.String(), Kind: string(entry.Kind)}
}

func toHolidayDTOs(entries []engine.HolidayDate) []HolidayDTO {
	dtos := make([]HolidayDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toHolidayDTO(e)
	}
	return dtos
}

package services

import (
	"math"
	"strings"
	"time"

	"petcare-backend/models"
)

// Pricing thresholds. These are business rules, not tuning knobs: walks are
// charged per half-hour unit, daycare is flat up to 8 hours and proportional
// beyond, boarding has a one-day minimum and rounds up to whole days.
const (
	walkUnitHours      = 0.5
	daycareFlatHours   = 8
	boardingMinimumDay = 1
)

// PriceBooking computes the amount for booking svc over [start, end).
// The rule is picked by a case-insensitive match on the service name;
// services that match no known kind fall back to plain hourly or daily
// proration, whichever rate is configured.
func PriceBooking(svc *models.Service, start, end time.Time) (float64, error) {
	if !svc.IsActive {
		return 0, NewNotFoundError("Service is not available")
	}
	if !start.Before(end) {
		return 0, NewValidationError("Start time must be before end time")
	}

	seconds := end.Sub(start).Seconds()
	hours := seconds / 3600
	days := seconds / 86400

	name := strings.ToLower(svc.Name)
	switch {
	case strings.Contains(name, "walk") || strings.Contains(name, "passeio"):
		if svc.HourlyRate == nil {
			return 0, NewConflictError("Service has no hourly rate configured")
		}
		return *svc.HourlyRate * (hours / walkUnitHours), nil

	case strings.Contains(name, "daycare") || strings.Contains(name, "creche"):
		if svc.DailyRate == nil {
			return 0, NewConflictError("Service has no daily rate configured")
		}
		if hours <= daycareFlatHours {
			return *svc.DailyRate, nil
		}
		return *svc.DailyRate * (hours / daycareFlatHours), nil

	case strings.Contains(name, "boarding") || strings.Contains(name, "hospedagem"):
		if svc.DailyRate == nil {
			return 0, NewConflictError("Service has no daily rate configured")
		}
		if days < boardingMinimumDay {
			return *svc.DailyRate, nil
		}
		return *svc.DailyRate * math.Ceil(days), nil

	default:
		switch {
		case svc.HourlyRate != nil && svc.DailyRate != nil:
			return 0, NewConflictError("Service has both hourly and daily rates configured")
		case svc.HourlyRate != nil:
			return *svc.HourlyRate * hours, nil
		case svc.DailyRate != nil:
			return *svc.DailyRate * days, nil
		default:
			return 0, NewConflictError("Service has no rate configured")
		}
	}
}

package apperrors

import (
	"errors"
	"net/http"
)

// ErrorCode is the stable machine-readable code returned to clock clients.
// Clients map codes to localized text; they must not parse Message.
type ErrorCode string

const (
	CodeNotAuthenticated         ErrorCode = "NOT_AUTHENTICATED"
	CodeNoCompany                ErrorCode = "NO_COMPANY"
	CodeCompanySelectionRequired ErrorCode = "COMPANY_SELECTION_REQUIRED"
	CodePointInvalid             ErrorCode = "POINT_INVALID"
	CodePointNotFound            ErrorCode = "POINT_NOT_FOUND"
	CodeDeviceRequired           ErrorCode = "DEVICE_REQUIRED"
	CodeDeviceRevoked            ErrorCode = "DEVICE_REVOKED"
	CodeDeviceLimitExceeded      ErrorCode = "DEVICE_LIMIT_EXCEEDED"
	CodeCompanySuspended         ErrorCode = "COMPANY_SUSPENDED"
	CodeDayPolicyViolation       ErrorCode = "DAY_POLICY_VIOLATION"
	CodeLegalRestriction         ErrorCode = "LEGAL_RESTRICTION"
	CodeScheduleViolation        ErrorCode = "SCHEDULE_VIOLATION"
	CodeSessionAlreadyActive     ErrorCode = "SESSION_ALREADY_ACTIVE"
	CodeNoActiveSession          ErrorCode = "NO_ACTIVE_SESSION"
	CodeLocationRequired         ErrorCode = "LOCATION_REQUIRED"
	CodeInvalidRequest           ErrorCode = "INVALID_REQUEST"
	CodeForbidden                ErrorCode = "FORBIDDEN"
	CodeStorageError             ErrorCode = "STORAGE_ERROR"
)

// Reason subcodes attached to policy rejections.
const (
	ReasonSundayBlocked         = "sunday_blocked"
	ReasonHolidayBlocked        = "holiday_blocked"
	ReasonHolidayRequiresReason = "holiday_requires_reason"
	ReasonSpecialDayRestricted  = "special_day_restricted"
	ReasonOutsideAllowedHours   = "outside_allowed_hours"
	ReasonExceededWeekHours     = "exceeded_week_hours"
	ReasonExceededMonthHours    = "exceeded_month_hours"
	ReasonTooSoonBetweenShifts  = "too_soon_between_shifts"
	ReasonShiftExceededMaxHours = "shift_exceeded_max_hours"
	ReasonTooEarly              = "too_early"
	ReasonTooLate               = "too_late"
)

// ClockError is a deterministic rejection of a clock action. It is never
// retried and is surfaced verbatim to the caller.
type ClockError struct {
	Code    ErrorCode
	Reason  string
	Message string
}

func (e *ClockError) Error() string {
	msg := string(e.Code)
	if e.Reason != "" {
		msg += "/" + e.Reason
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// HTTPStatus maps the error code to its status class.
func (e *ClockError) HTTPStatus() int {
	switch e.Code {
	case CodeNotAuthenticated:
		return http.StatusUnauthorized
	case CodeNoCompany, CodeDeviceRevoked, CodeDeviceLimitExceeded, CodeCompanySuspended, CodeForbidden:
		return http.StatusForbidden
	case CodePointNotFound:
		return http.StatusNotFound
	case CodeStorageError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// NewClockError builds a rejection with an optional reason subcode.
func NewClockError(code ErrorCode, reason, message string) *ClockError {
	return &ClockError{Code: code, Reason: reason, Message: message}
}

// AsClockError unwraps err into a *ClockError if it is one.
func AsClockError(err error) (*ClockError, bool) {
	var ce *ClockError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

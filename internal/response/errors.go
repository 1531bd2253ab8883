package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidAccessCode ErrCode = "INVALID_ACCESS_CODE"
	ErrPairingDisabled   ErrCode = "PAIRING_DISABLED"
	ErrTokenRequired     ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid      ErrCode = "TOKEN_INVALID"
	ErrTokenExpired      ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrActionForbidden ErrCode = "ACTION_FORBIDDEN"

	// ─── Exam sessions ─────────────────────────────────────────────────
	ErrSessionNotFound     ErrCode = "SESSION_NOT_FOUND"
	ErrSessionNotActive    ErrCode = "SESSION_NOT_ACTIVE"
	ErrSessionNotSubmitted ErrCode = "SESSION_NOT_SUBMITTED"
	ErrPrepHasNoResult     ErrCode = "PREP_HAS_NO_RESULT"
	ErrNoQuestions         ErrCode = "NO_QUESTIONS"

	// ─── Logbook import/export ─────────────────────────────────────────
	ErrImportInvalid    ErrCode = "IMPORT_INVALID"
	ErrImportConflict   ErrCode = "IMPORT_STATION_CONFLICT"
	ErrNothingToImport  ErrCode = "NOTHING_TO_IMPORT"
	ErrInvalidDate      ErrCode = "INVALID_DATE"
	ErrInvalidTime      ErrCode = "INVALID_TIME"
	ErrInvalidCallsign  ErrCode = "INVALID_CALLSIGN"
	ErrInvalidFrequency ErrCode = "INVALID_FREQUENCY"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidAccessCode:
		return "Incorrect station access code."
	case ErrPairingDisabled:
		return "Device pairing is not configured on this server."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Exam sessions ─────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "Exam session not found or already closed."
	case ErrSessionNotActive:
		return "This exam session is not in progress."
	case ErrSessionNotSubmitted:
		return "Results are only available after the exam is submitted."
	case ErrPrepHasNoResult:
		return "Preparation sessions are not scored."
	case ErrNoQuestions:
		return "No questions are available for the requested class and sections."

	// ─── Logbook import/export ─────────────────────────────────────────
	case ErrImportInvalid:
		return "The import file failed validation."
	case ErrImportConflict:
		return "The import file belongs to a different station."
	case ErrNothingToImport:
		return "All contacts in the file are already in the logbook."
	case ErrInvalidDate:
		return "Invalid date format. Expected YYYY-MM-DD."
	case ErrInvalidTime:
		return "Invalid time format. Expected HH:MM:SS or HH:MM."
	case ErrInvalidCallsign:
		return "Invalid callsign."
	case ErrInvalidFrequency:
		return "Frequency must be a positive number."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}

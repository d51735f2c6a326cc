package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Session token ─────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload  ErrCode = "INVALID_PAYLOAD"
	ErrInvalidResponse ErrCode = "INVALID_RESPONSE"
	ErrUnknownAction   ErrCode = "UNKNOWN_ACTION"

	// ─── Catalog ───────────────────────────────────────────────────────
	ErrCatalogUnavailable ErrCode = "CATALOG_UNAVAILABLE"
	ErrQuizNotFound       ErrCode = "QUIZ_NOT_FOUND"

	// ─── Session ───────────────────────────────────────────────────────
	ErrSessionNotFound   ErrCode = "SESSION_NOT_FOUND"
	ErrNoSelection       ErrCode = "NO_SELECTION"
	ErrQuestionLocked    ErrCode = "QUESTION_LOCKED"
	ErrActionUnavailable ErrCode = "ACTION_UNAVAILABLE"
	ErrNotAllAnswered    ErrCode = "NOT_ALL_ANSWERED"
	ErrSessionCompleted  ErrCode = "SESSION_COMPLETED"
	ErrResultsNotReady   ErrCode = "RESULTS_NOT_READY"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Session token ─────────────────────────────────────────────────
	case ErrTokenRequired:
		return "A session token is required."
	case ErrTokenInvalid:
		return "The session token is invalid or has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "The request data is invalid."
	case ErrInvalidPayload:
		return "The request body could not be read."
	case ErrInvalidResponse:
		return "That answer does not fit the current question."
	case ErrUnknownAction:
		return "Unknown action."

	// ─── Catalog ───────────────────────────────────────────────────────
	case ErrCatalogUnavailable:
		return "Could not load quizzes. Please try again later."
	case ErrQuizNotFound:
		return "Quiz not found."

	// ─── Session ───────────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "No active quiz session. Pick a quiz to start."
	case ErrNoSelection:
		return "Please select an answer."
	case ErrQuestionLocked:
		return "This question has already been checked."
	case ErrActionUnavailable:
		return "That action is not available for this question."
	case ErrNotAllAnswered:
		return "Answer every question before finishing."
	case ErrSessionCompleted:
		return "This quiz is already finished."
	case ErrResultsNotReady:
		return "Finish the quiz to see your results."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please slow down."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Something went wrong on our side."
	default:
		return "An unknown error occurred."
	}
}

package constants

const (
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeActionInProgress     = "ACTION_IN_PROGRESS"
	ErrCodeMessageNotFound      = "MESSAGE_NOT_FOUND"
	ErrCodeFormClosed           = "FORM_CLOSED"
	ErrCodeBackendRequestFailed = "BACKEND_REQUEST_FAILED"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeUnknownTab           = "UNKNOWN_TAB"
	ErrCodeRouteNotFound        = "ROUTE_NOT_FOUND"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

const (
	ErrMsgValidationFailed     = "one or more fields are invalid"
	ErrMsgActionInProgress     = "the previous request is still in progress"
	ErrMsgMessageNotFound      = "message not found"
	ErrMsgFormClosed           = "the edit form is closed"
	ErrMsgBackendRequestFailed = "scheduler backend request failed"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgUnknownTab           = "unknown tab"
	ErrMsgRouteNotFound        = "route not found"
	ErrMsgInternalError        = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
	ErrCodeActionInProgress:     ErrMsgActionInProgress,
	ErrCodeMessageNotFound:      ErrMsgMessageNotFound,
	ErrCodeFormClosed:           ErrMsgFormClosed,
	ErrCodeBackendRequestFailed: ErrMsgBackendRequestFailed,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeUnknownTab:           ErrMsgUnknownTab,
	ErrCodeRouteNotFound:        ErrMsgRouteNotFound,
	ErrCodeInternalError:        ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeUnknownTab:
		return 400
	case ErrCodeMessageNotFound, ErrCodeRouteNotFound:
		return 404
	case ErrCodeActionInProgress, ErrCodeFormClosed:
		return 409
	case ErrCodeValidationFailed:
		return 422
	case ErrCodeBackendRequestFailed:
		return 502
	default:
		return 500
	}
}

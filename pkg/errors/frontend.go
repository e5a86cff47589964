package errors

import "net/http"

// FrontendError represents an error formatted for frontend consumption
type FrontendError struct {
	Type    string                 `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToFrontendError converts an AppError to a frontend-friendly format
func ToFrontendError(err error) *FrontendError {
	if appErr, ok := As(err); ok {
		return &FrontendError{
			Type:    string(appErr.Type),
			Code:    appErr.Code,
			Message: appErr.GetUserMessage(),
			Context: appErr.Context,
		}
	}

	// Handle generic errors
	return &FrontendError{
		Type:    string(ErrTypeApp),
		Code:    "GENERIC_ERROR",
		Message: "Ocorreu um erro inesperado. Tente novamente",
		Context: map[string]interface{}{"originalError": err.Error()},
	}
}

// HTTPStatus maps an error to the status code the API answers with
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeNotFound:
		return http.StatusNotFound
	case ErrTypeAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

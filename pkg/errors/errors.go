package errors

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// Input rejected before anything was written
	ErrTypeValidation ErrorType = "validation"
	// Storage gateway read or write failures
	ErrTypeStorage ErrorType = "storage"
	// The requested item is not in its collection
	ErrTypeNotFound ErrorType = "not_found"
	// Persisted data that could not be decoded
	ErrTypeData ErrorType = "data"
	// Authentication errors
	ErrTypeAuth ErrorType = "authentication"
	// Configuration errors
	ErrTypeConfig ErrorType = "configuration"
	// Generic application errors
	ErrTypeApp ErrorType = "application"
)

// AppError represents a structured application error
type AppError struct {
	Type        ErrorType              `json:"type"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	UserMessage string                 `json:"userMessage"`
	InternalErr error                  `json:"-"`
	Context     map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.InternalErr != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.InternalErr)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap exposes the wrapped error to errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.InternalErr
}

// GetUserMessage returns a user-friendly error message
func (e *AppError) GetUserMessage() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return e.Message
}

// WithContext returns a copy of the error carrying an extra context value.
// Predefined errors are shared, so they are never mutated in place.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	c := e.clone()
	c.Context[key] = value
	return c
}

// WithUserMessage returns a copy of the error with a user-facing message
func (e *AppError) WithUserMessage(msg string) *AppError {
	c := e.clone()
	c.UserMessage = msg
	return c
}

func (e *AppError) clone() *AppError {
	c := *e
	c.Context = make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		c.Context[k] = v
	}
	return &c
}

// Log logs the error with its context
func (e *AppError) Log() {
	contextStr := ""
	if len(e.Context) > 0 {
		parts := make([]string, 0, len(e.Context))
		for k, v := range e.Context {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		sort.Strings(parts)
		contextStr = fmt.Sprintf(" [%s]", strings.Join(parts, ", "))
	}

	log.Printf("ERROR %s%s", e.Error(), contextStr)
}

// New creates a new AppError
func New(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:        errType,
		Code:        code,
		Message:     message,
		InternalErr: err,
	}
}

// As reports whether err is, or wraps, an AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err has the given error type
func Is(err error, errType ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == errType
}

// Predefined errors for common scenarios
var (
	ErrBlankNote = New(ErrTypeValidation, "NOTE_BLANK", "note has no title, content or list items").
			WithUserMessage("Escreva algo antes de salvar a nota.")

	ErrTitleRequired = New(ErrTypeValidation, "TITLE_REQUIRED", "note title is required").
				WithUserMessage("Adiciona um título antes de salvar!")

	ErrBlankReminder = New(ErrTypeValidation, "REMINDER_BLANK", "reminder message is empty").
				WithUserMessage("Por favor, escreva o que devemos lembrar.")

	ErrInvalidDate = New(ErrTypeValidation, "DATE_INVALID", "reminder date is not a valid timestamp").
			WithUserMessage("Escolha uma data válida para o lembrete.")

	ErrNoteNotFound = New(ErrTypeNotFound, "NOTE_NOT_FOUND", "note not found").
			WithUserMessage("Nota não encontrada.")

	ErrTrashEntryNotFound = New(ErrTypeNotFound, "TRASH_ENTRY_NOT_FOUND", "trash entry not found").
				WithUserMessage("Item não encontrado na lixeira.")

	ErrReminderNotFound = New(ErrTypeNotFound, "REMINDER_NOT_FOUND", "reminder not found").
				WithUserMessage("Lembrete não encontrado.")

	ErrSaveFailed = New(ErrTypeStorage, "SAVE_FAILED", "failed to write collection").
			WithUserMessage("Não foi possível salvar.")

	ErrDeleteFailed = New(ErrTypeStorage, "DELETE_FAILED", "failed to delete item").
			WithUserMessage("Não foi possível excluir.")

	ErrRestoreFailed = New(ErrTypeStorage, "RESTORE_FAILED", "failed to restore item").
				WithUserMessage("Falha ao restaurar nota.")

	ErrMalformedData = New(ErrTypeData, "MALFORMED_DATA", "stored collection is not a JSON array; reading it as empty").
				WithUserMessage("Os dados salvos estão corrompidos.")

	ErrLoadFailed = New(ErrTypeStorage, "LOAD_FAILED", "failed to read collection").
			WithUserMessage("Não foi possível carregar os dados.")

	ErrNotAuthenticated = New(ErrTypeAuth, "NOT_AUTHENTICATED", "user not authenticated").
				WithUserMessage("Faça login para continuar.")

	ErrInvalidCredentials = New(ErrTypeAuth, "INVALID_CREDENTIALS", "invalid email or password").
				WithUserMessage("Email ou senha incorretos!")

	ErrMissingFields = New(ErrTypeValidation, "MISSING_FIELDS", "required fields are empty").
				WithUserMessage("Preencha todos os campos!")

	ErrPasswordMismatch = New(ErrTypeValidation, "PASSWORD_MISMATCH", "passwords do not match").
				WithUserMessage("As senhas não coincidem!")

	ErrConfigLoadFailed = New(ErrTypeConfig, "CONFIG_LOAD_FAILED", "failed to load configuration").
				WithUserMessage("Configuration file could not be loaded. Using defaults")

	ErrConfigSaveFailed = New(ErrTypeConfig, "CONFIG_SAVE_FAILED", "failed to save configuration").
				WithUserMessage("Unable to save settings. Check permissions")
)

// Cause returns a copy of a predefined error wrapping err
func Cause(base *AppError, err error) *AppError {
	c := base.clone()
	c.InternalErr = err
	return c
}

package errors

import (
	"strings"
	"time"

	"scrib/pkg/models"
)

// MaxContentBytes caps the text stored in a single note
const MaxContentBytes = 1024 * 1024

// ValidationResult holds validation results
type ValidationResult struct {
	IsValid bool
	Errors  []*AppError
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(err *AppError) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, err)
}

// GetFirstError returns the first error or nil
func (vr *ValidationResult) GetFirstError() *AppError {
	if len(vr.Errors) > 0 {
		return vr.Errors[0]
	}
	return nil
}

// Validator provides validation utilities
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateNote checks a note before it is written
func (v *Validator) ValidateNote(note models.Note) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if r := v.ValidateNoteID(note.ID); !r.IsValid {
		return r
	}

	if note.IsBlank() {
		result.AddError(ErrBlankNote.WithContext("noteId", note.ID))
		return result
	}

	size := len(note.Title) + len(note.Content)
	for _, item := range note.List {
		size += len(item.Text)
	}
	if size > MaxContentBytes {
		result.AddError(New(ErrTypeValidation, "CONTENT_TOO_LARGE", "note content too large").
			WithUserMessage("Nota muito grande. O limite é 1MB").
			WithContext("size", size))
	}

	if note.Mode != "" && note.Mode != models.ModeText && note.Mode != models.ModeList {
		result.AddError(New(ErrTypeValidation, "MODE_INVALID", "unknown note mode").
			WithUserMessage("Tipo de nota inválido").
			WithContext("mode", string(note.Mode)))
	}

	return result
}

// ValidateNoteID validates note ID format
func (v *Validator) ValidateNoteID(id string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if strings.TrimSpace(id) == "" {
		result.AddError(New(ErrTypeValidation, "ID_EMPTY", "note ID cannot be empty").
			WithUserMessage("Note ID is required"))
	}

	return result
}

// ValidateReminder checks a reminder before it is scheduled
func (v *Validator) ValidateReminder(r models.Reminder) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if r.IsBlank() {
		result.AddError(ErrBlankReminder)
		return result
	}

	if _, ok := r.When(); !ok {
		result.AddError(ErrInvalidDate.WithContext("date", r.Date))
	}

	return result
}

// ValidateRegistration checks the account creation form
func (v *Validator) ValidateRegistration(name, email, password, confirm string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	for _, field := range []string{name, email, password, confirm} {
		if strings.TrimSpace(field) == "" {
			result.AddError(ErrMissingFields)
			return result
		}
	}

	if password != confirm {
		result.AddError(ErrPasswordMismatch)
	}

	return result
}

// ValidateRetention rejects a trash retention that would evict on sight
func (v *Validator) ValidateRetention(d time.Duration) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if d <= 0 {
		result.AddError(New(ErrTypeConfig, "RETENTION_INVALID", "trash retention must be positive").
			WithUserMessage("Trash retention must be at least one day").
			WithContext("retention", d.String()))
	}

	return result
}

package dynamo

import "errors"

// Domain errors for scene construction and runs.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownVariant indicates a variant name with no preset.
	ErrUnknownVariant = errors.New("dynamo: unknown variant")

	// ErrInvalidRun indicates a headless run with a bad frame count or timestep.
	ErrInvalidRun = errors.New("dynamo: invalid run parameters")

	// ErrAudioUnavailable indicates the audio backend could not be opened.
	ErrAudioUnavailable = errors.New("dynamo: audio backend unavailable")
)

// FieldError names the configuration field that failed validation.
type FieldError struct {
	Field   string
	Value   any
	Reason  string
	Wrapped error
}

func (e *FieldError) Error() string {
	return e.Wrapped.Error() + ": " + e.Field + " " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}

// Invalid builds a FieldError wrapping ErrInvalidConfig.
func Invalid(field string, value any, reason string) error {
	return &FieldError{Field: field, Value: value, Reason: reason, Wrapped: ErrInvalidConfig}
}

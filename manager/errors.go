package manager

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotConfigured    = errors.New("pipeline is not configured")
	ErrInvalidLocation  = errors.New("invalid location format")
	ErrTimezoneNotFound = fmt.Errorf("timezone %w", ErrNotFound)
	ErrMisalignedSeries = errors.New("daily series are not aligned")
)

// Stage names a step of the forecast pipeline.
type Stage string

const (
	StageResolve Stage = "resolve"
	StageFetch   Stage = "fetch"
)

// StageError tags an error with the pipeline stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// APIError represents a non-200 answer from an upstream API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status code: %d\n%s", e.Provider, e.StatusCode, e.Message)
}

// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrRecorderBusy is returned when a recording is started while one is already running.
	ErrRecorderBusy = errors.New("recording already in progress")

	// ErrNotRecording is returned when pause/resume/stop is attempted with no active recording.
	ErrNotRecording = errors.New("no recording in progress")

	// ErrNotPaused is returned when resume is attempted while capture is not paused.
	ErrNotPaused = errors.New("recording is not paused")

	// ErrNoRecording is returned when an operation requires a finished recording.
	ErrNoRecording = errors.New("no recording available")

	// ErrInvalidPosition is returned when seeking outside [0, Duration].
	ErrInvalidPosition = errors.New("invalid playback position")

	// ErrSourceClosed is returned when an amplitude source is used after shutdown.
	ErrSourceClosed = errors.New("amplitude source closed")
)

// CaptureError represents an error from the audio capture backend.
// This wraps low-level device errors with additional context.
type CaptureError struct {
	Op      string // Operation that failed (e.g., "open", "start", "read")
	Device  string // Device name (if known)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	if e.Device != "" {
		return fmt.Sprintf("capture %s failed on %q: %s", e.Op, e.Device, e.Message)
	}
	return fmt.Sprintf("capture %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError.
func NewCaptureError(op, device, message string, err error) *CaptureError {
	return &CaptureError{
		Op:      op,
		Device:  device,
		Message: message,
		Err:     err,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "RecorderService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

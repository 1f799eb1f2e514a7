package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// Error codes
const (
	CodeFetch      = "FETCH_ERROR"
	CodeStructure  = "STRUCTURE_ERROR"
	CodeDataFile   = "DATA_FILE_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
)

type ScrapeError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// FetchError reports a failed page request. StatusCode is zero for transport errors.
type FetchError struct {
	*ScrapeError
	URL string
}

func NewFetchError(url string, statusCode int, cause error) *FetchError {
	message := "page fetch failed"
	if statusCode != 0 {
		message = fmt.Sprintf("page fetch failed with status %d", statusCode)
	}
	return &FetchError{
		ScrapeError: &ScrapeError{
			Message:    message,
			Code:       CodeFetch,
			StatusCode: statusCode,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
		URL: url,
	}
}

// StructureError means the expected list container was not found at all.
type StructureError struct {
	*ScrapeError
	Chamber string
	URLs    []string
}

func NewStructureError(message, chamber string, urls []string) *StructureError {
	return &StructureError{
		ScrapeError: &ScrapeError{
			Message:    message,
			Code:       CodeStructure,
			StatusCode: 500,
			Context: map[string]any{
				"chamber": chamber,
				"urls":    urls,
			},
		},
		Chamber: chamber,
		URLs:    urls,
	}
}

type DataFileError struct {
	*ScrapeError
	Path      string
	Operation string
}

func NewDataFileError(message, operation, path string, cause error) *DataFileError {
	return &DataFileError{
		ScrapeError: &ScrapeError{
			Message:    message,
			Code:       CodeDataFile,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"path":      path,
			},
			Cause: cause,
		},
		Path:      path,
		Operation: operation,
	}
}

type APIError struct {
	*ScrapeError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		ScrapeError: &ScrapeError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*ScrapeError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		ScrapeError: &ScrapeError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*ScrapeError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		ScrapeError: &ScrapeError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*ScrapeError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		ScrapeError: &ScrapeError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

func IsStructureError(err error) bool {
	var target *StructureError
	return stderrors.As(err, &target)
}

// IsNotExist reports whether err wraps a missing-file condition.
func IsNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}

package extraction

import "context"

// Extractor defines the interface for slip extraction operations
type Extractor interface {
	// ExtractSlip analyzes a slip image and returns its structured fields.
	// It returns exactly one outcome per call: a *SlipData on success, or
	// an error carrying a human-readable message on failure. It never
	// retries and never serializes concurrent calls; the caller owns the
	// single-flight policy.
	ExtractSlip(ctx context.Context, filename string, imageData []byte, contentType string) (*SlipData, error)
	// Close closes the extractor and releases resources
	Close() error
}

// ServiceError is a failure reported by the extraction service itself,
// as opposed to a transport-level failure reaching it.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

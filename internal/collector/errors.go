package collector

import (
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

// ErrNoStreams means there were no stream names to collect events from.
var ErrNoStreams = errors.New("no CloudWatch Log stream matches the criteria")

// ProviderError wraps a failed AWS API call.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message())
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Message returns the service supplied message when there is one.
func (e *ProviderError) Message() string {
	var ae smithy.APIError
	if errors.As(e.Err, &ae) && ae.ErrorMessage() != "" {
		return ae.ErrorMessage()
	}
	return e.Err.Error()
}

// Code returns the service error code, or "" for non-API failures.
func (e *ProviderError) Code() string {
	var ae smithy.APIError
	if errors.As(e.Err, &ae) {
		return ae.ErrorCode()
	}
	return ""
}

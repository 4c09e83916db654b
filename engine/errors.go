package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
)

// ErrInvalidArgument reports a call rejected before any network access.
type ErrInvalidArgument struct {
	Op     string
	Arg    string
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("%s: invalid argument %s: %s", e.Op, e.Arg, e.Reason)
}

// ErrRequestFailed reports a transport failure or a non-success status. For
// status failures, StatusCode and Body are set and Errors holds the parsed
// error objects when the body carried any.
type ErrRequestFailed struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Errors     []response.Error
	Cause      error
}

func (e *ErrRequestFailed) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
	}
	msg := fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	if len(e.Errors) > 0 {
		details := make([]string, 0, len(e.Errors))
		for _, apiErr := range e.Errors {
			details = append(details, apiErr.Error())
		}
		msg += " (" + strings.Join(details, "; ") + ")"
	}
	return msg
}

func (e *ErrRequestFailed) Unwrap() error { return e.Cause }

// ErrCancelled reports a call aborted by its context.
type ErrCancelled struct {
	Cause error
}

func (e *ErrCancelled) Error() string {
	return fmt.Sprintf("request cancelled: %v", e.Cause)
}

func (e *ErrCancelled) Unwrap() error { return e.Cause }

// DecodingError reports a response that does not match the expected shape.
type DecodingError = resource.DecodingError

// IsInvalidArgument reports whether err is an ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	var target *ErrInvalidArgument
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a request that failed with 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsCancelled reports whether err is an ErrCancelled.
func IsCancelled(err error) bool {
	var target *ErrCancelled
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status of a failed request, or 0.
func StatusCode(err error) int {
	var target *ErrRequestFailed
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}

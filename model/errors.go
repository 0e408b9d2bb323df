package model

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	ErrTransport ErrorKind = iota
	ErrNotFound
	ErrMalformed
)

// sentinels usable with errors.Is, one per kind
var (
	ErrTransportFailure     = errors.New("TRANSPORT_ERROR")
	ErrOrganizationNotFound = errors.New("ORGANIZATION_NOT_FOUND")
	ErrMalformedResponse    = errors.New("MALFORMED_RESPONSE")
)

// FetchError is returned by repo clients for every failure
// Status is the HTTP status code when the backend answered, 0 otherwise
type FetchError struct {
	Kind   ErrorKind
	Status int
	Cause  error
}

func NewNotFoundError(status int) *FetchError {
	return &FetchError{Kind: ErrNotFound, Status: status}
}

func NewTransportError(status int, cause error) *FetchError {
	return &FetchError{Kind: ErrTransport, Status: status, Cause: cause}
}

func NewMalformedError(format string, args ...any) *FetchError {
	return &FetchError{Kind: ErrMalformed, Cause: fmt.Errorf(format, args...)}
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return "organization not found"
	case ErrMalformed:
		return fmt.Sprintf("malformed response: %v", e.Cause)
	default:
		if e.Cause == nil {
			return fmt.Sprintf("http error: status %d", e.Status)
		}
		return fmt.Sprintf("http error: %v", e.Cause)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the error kind
func (e *FetchError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *FetchError) sentinel() error {
	switch e.Kind {
	case ErrNotFound:
		return ErrOrganizationNotFound
	case ErrMalformed:
		return ErrMalformedResponse
	default:
		return ErrTransportFailure
	}
}

// kindOf returns the kind of any error, errors not produced by a repo client are transport errors
func kindOf(err error) (ErrorKind, *FetchError) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind, fetchErr
	}

	return ErrTransport, nil
}

// process exit codes
const (
	ExitOK        = 0
	ExitTransport = 1
	ExitNotFound  = 2
	ExitMalformed = 3
)

type CLIError struct {
	ExitCode int
	Message  string
}

// NewCLIError converts an error into the single line printed on stderr and the process exit code
func NewCLIError(errReason error) CLIError {
	kind, fetchErr := kindOf(errReason)

	switch kind {
	case ErrNotFound:
		return CLIError{
			ExitCode: ExitNotFound,
			Message:  "Error: organization not found",
		}

	case ErrMalformed:
		return CLIError{
			ExitCode: ExitMalformed,
			Message:  fmt.Sprintf("Error: response data does not match the expected shape: %v", fetchErr.Cause),
		}

	default:
		cause := errReason
		if fetchErr != nil && fetchErr.Cause != nil {
			cause = fetchErr.Cause
		}

		return CLIError{
			ExitCode: ExitTransport,
			Message:  fmt.Sprintf("Error: http connection failed - %v", cause),
		}
	}
}

type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewAPIError(errReason error) APIError {
	kind, _ := kindOf(errReason)

	switch kind {
	case ErrNotFound:
		return APIError{
			Status:  http.StatusNotFound,
			Code:    ErrOrganizationNotFound.Error(),
			Message: "organization not found on github",
		}

	case ErrMalformed:
		return APIError{
			Status:  http.StatusBadGateway,
			Code:    ErrMalformedResponse.Error(),
			Message: "github returned data that does not match the expected shape",
		}

	default:
		return APIError{
			Status:  http.StatusBadGateway,
			Code:    ErrTransportFailure.Error(),
			Message: "unable to reach github. contact our support with the reason code for assistance",
		}
	}
}

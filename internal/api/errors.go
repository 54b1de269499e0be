package api

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/tidwall/gjson"
)

// Kind classifies a failed request.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindTimeout
	KindUnauthorized
	KindNotFound
	KindValidation
	KindServer
	KindDecode
)

var (
	ErrNetwork      = errors.New("network error")
	ErrTimeout      = errors.New("request timed out")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid request")
	ErrServer       = errors.New("server error")
	ErrDecode       = errors.New("invalid response")

	// ErrNotModified is returned by conditional requests answered with 304.
	ErrNotModified = errors.New("not modified")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindTimeout:
		return ErrTimeout
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindServer:
		return ErrServer
	case KindDecode:
		return ErrDecode
	}
	return nil
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown error"
}

// Error is returned by every failed call of [Client].
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := cmp.Or(e.Message, e.Kind.String())
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (%d)", msg, e.Status)
	}
	// A successful status carries no message of its own, the cause is in Err.
	if e.Err != nil && (e.Message == "" || e.Status/100 == 2) {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match the sentinel of the error kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of err, or 0 when err is not an [*Error].
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return KindTimeout
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// statusError builds the error of a non-2xx response, taking the message
// from the usual JSON error fields when present.
func statusError(status int, body []byte) *Error {
	var msg string
	if gjson.ValidBytes(body) {
		res := gjson.GetManyBytes(body, "error.message", "error", "message", "errors.0.message", "errors.0")
		for _, r := range res {
			if r.Type == gjson.String && r.Str != "" {
				msg = r.Str
				break
			}
		}
	} else {
		msg = ansi.Truncate(strings.TrimSpace(string(body)), 200, "…")
	}
	return &Error{
		Kind:    kindForStatus(status),
		Status:  status,
		Message: cmp.Or(msg, http.StatusText(status)),
	}
}

// transportError classifies an error returned by the HTTP client.
func transportError(err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: KindTimeout, Err: err}
	default:
		return &Error{Kind: KindNetwork, Err: err}
	}
}

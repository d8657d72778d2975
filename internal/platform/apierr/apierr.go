package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/ideascore-backend/internal/domain"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError classifies err by its domain code. Unclassified errors become 500s
// whose message is not echoed to the client.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch domain.CodeOf(err) {
	case domain.CodeValidation:
		return New(http.StatusBadRequest, string(domain.CodeValidation), err)
	case domain.CodeAuthorization:
		return New(http.StatusForbidden, string(domain.CodeAuthorization), err)
	case domain.CodeNotFound:
		return New(http.StatusNotFound, string(domain.CodeNotFound), err)
	case domain.CodeConflict:
		return New(http.StatusConflict, string(domain.CodeConflict), err)
	default:
		return New(http.StatusInternalServerError, string(domain.CodeInternal), errors.New("internal error"))
	}
}

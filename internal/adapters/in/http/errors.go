package http

import (
	"errors"
	"fmt"
	"net/http"

	"ordersapi/internal/core/domain/model/shipment"
	"ordersapi/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// malformedBodyError marks a request body that could not be decoded.
type malformedBodyError struct {
	cause error
}

func (e malformedBodyError) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.cause)
}

func (e malformedBodyError) Unwrap() error {
	return e.cause
}

// problem is one error rendered as a status and field messages.
type problem struct {
	status int
	field  string
	msgs   []string
	fields map[string][]string
}

// writeError renders err as {"errors": {...}}. Joined errors are reported together
// under the most severe status among them; unknown errors become a logged 500.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	status := 0
	body := errorResponse{Errors: map[string][]string{}}

	for _, leaf := range leaves(err) {
		p := classify(leaf)
		if p.status == http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(leaf),
			)
		}
		if p.status > status {
			status = p.status
		}
		if p.field != "" {
			body.Errors[p.field] = append(body.Errors[p.field], p.msgs...)
		}
		for field, msgs := range p.fields {
			body.Errors[field] = append(body.Errors[field], msgs...)
		}
	}

	if status == http.StatusInternalServerError {
		body.Errors = map[string][]string{"internal": {"An unexpected error occurred"}}
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, body)
}

// leaves flattens errors.Join trees, including joins wrapped by fmt.Errorf.
func leaves(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, leaves(e)...)
		}
		return out
	}
	if known(err) {
		return []error{err}
	}
	if inner := errors.Unwrap(err); inner != nil {
		if nested := leaves(inner); len(nested) > 1 || (len(nested) == 1 && known(nested[0])) {
			return nested
		}
	}
	return []error{err}
}

func known(err error) bool {
	switch err.(type) {
	case *errs.ValidationError, *errs.ObjectNotFoundError, *errs.ConflictError, *errs.ProcessingError,
		*errs.ValueIsRequiredError, *errs.ValueIsInvalidError, *errs.ValueIsOutOfRangeError,
		malformedBodyError, *echo.HTTPError:
		return true
	}
	return errors.Is(err, shipment.ErrNothingToShip)
}

func classify(err error) problem {
	var (
		validation *errs.ValidationError
		notFound   *errs.ObjectNotFoundError
		conflict   *errs.ConflictError
		processing *errs.ProcessingError
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
		malformed  malformedBodyError
		httpErr    *echo.HTTPError
	)

	switch {
	case errors.As(err, &validation):
		return problem{status: http.StatusBadRequest, fields: validation.Fields}
	case errors.As(err, &notFound):
		return problem{status: http.StatusNotFound, field: notFound.ParamName, msgs: []string{"not found"}}
	case errors.As(err, &conflict):
		return problem{status: http.StatusConflict, field: "error", msgs: []string{conflict.Reason}}
	case errors.As(err, &processing):
		return problem{status: http.StatusBadRequest, field: "order placement", msgs: processing.Messages}
	case errors.Is(err, shipment.ErrNothingToShip):
		return problem{status: http.StatusBadRequest, field: "error", msgs: []string{shipment.ErrNothingToShip.Error()}}
	case errors.As(err, &required):
		return problem{status: http.StatusBadRequest, field: required.ParamName, msgs: []string{required.ParamName + " is required"}}
	case errors.As(err, &invalid):
		return problem{status: http.StatusBadRequest, field: invalid.ParamName, msgs: []string{"invalid " + invalid.ParamName}}
	case errors.As(err, &outOfRange):
		return problem{status: http.StatusBadRequest, field: outOfRange.ParamName, msgs: []string{fmt.Sprintf(
			"%s must be between %v and %v", outOfRange.ParamName, outOfRange.Min, outOfRange.Max)}}
	case errors.As(err, &malformed):
		return problem{status: http.StatusUnprocessableEntity, field: "request", msgs: []string{"Invalid request body"}}
	case errors.As(err, &httpErr):
		return problem{status: httpErr.Code, field: "error", msgs: []string{fmt.Sprint(httpErr.Message)}}
	default:
		return problem{status: http.StatusInternalServerError}
	}
}

// HTTPErrorHandler renders errors that escape the handlers, such as unknown
// routes and rejected tokens, in the same shape as handler errors.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if writeErr := writeError(c, logger, err); writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

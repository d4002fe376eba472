package http

import (
	_ "embed"
	"errors"
	"fmt"

	"ordersapi/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

//go:embed openapi.yaml
var openapiSpec []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator checks requests against the API description before they
// reach the handlers. Parameter violations become 400s on the parameter name,
// body violations become 422s. Requests for paths the document does not
// describe are passed through so echo can answer them.
func RequestValidator(doc *openapi3.T, logger *zap.Logger) (echo.MiddlewareFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		MultiError:         true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return writeError(c, logger, err)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return writeError(c, logger, requestViolation(err))
			}
			return next(c)
		}
	}, nil
}

// requestViolation maps validator errors onto the error types the API renders.
func requestViolation(err error) error {
	if multi, ok := err.(openapi3.MultiError); ok {
		violations := make([]error, 0, len(multi))
		for _, e := range multi {
			violations = append(violations, requestViolation(e))
		}
		return errors.Join(violations...)
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			name := reqErr.Parameter.Name
			return errs.NewFieldError(name, "invalid "+name)
		}
		return malformedBodyError{cause: reqErr}
	}
	return errs.NewFieldError("request", err.Error())
}

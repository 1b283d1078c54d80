package http

import (
	"net/http"

	"donations/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// requestValidator plugs validator/v10 into echo.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the struct tags of i.
func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bindBody decodes and validates the JSON body into dest.
func bindBody(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		return err
	}
	return c.Validate(dest)
}

// pathID binds a required UUID path parameter the way generated servers do.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name).SetInternal(err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

// queryID binds an optional UUID query parameter; nil means absent.
func queryID(c echo.Context, name string) (*kernel.UUID, error) {
	var raw *uuid.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name).SetInternal(err)
	}
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryBool binds an optional boolean query parameter.
func queryBool(c echo.Context, name string) (bool, error) {
	var value *bool
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name).SetInternal(err)
	}
	return value != nil && *value, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryEnum reads an optional textual enum from the query string.
func queryEnum[T any](c echo.Context, name string, parse func(string) (T, error)) (*T, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := parse(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name).SetInternal(err)
	}
	return &value, nil
}

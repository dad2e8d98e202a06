package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Code string      `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Msg: "success", Data: data})
}

func accepted(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusAccepted, Response{Code: "ACCEPTED", Msg: "export scheduled", Data: data})
}

func fail(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, Response{Code: code, Msg: msg})
}

// failErr maps domain errors onto status codes.
func failErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrNotConfirmed):
		return fail(c, http.StatusConflict, "NOT_CONFIRMED", "Deletion requires confirm=true")
	case errors.Is(err, domain.ErrNoFavorites):
		return fail(c, http.StatusBadRequest, "NO_FAVORITES", "No favorites saved.")
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// structValidator adapts validator/v10 to echo.Validator.
type structValidator struct {
	v *validator.Validate
}

func (s *structValidator) Validate(i interface{}) error {
	return s.v.Struct(i)
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", verrs[0].Field()+" is "+verrs[0].Tag())
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

package http

import (
	"errors"
	"net/http"

	"cvneat/internal/core/application/usecases/commands"
	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/domain/services"
	"cvneat/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain and application errors to HTTP status codes.
//
// The interesting cases are the lifecycle conflicts: a lost claim race, an
// out-of-order transition or a cancel on a claimed order are all 409s, because
// the request was well-formed but the order's state no longer permits it.
func statusFor(err error) int {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	switch {
	case errors.Is(err, order.ErrOrderAlreadyClaimed),
		errors.Is(err, order.ErrOrderNotClaimable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrTrackingInactive),
		errors.Is(err, order.ErrOrderNotPaid),
		errors.Is(err, commands.ErrCourierNotAvailable),
		errors.Is(err, commands.ErrCourierMismatch):
		return http.StatusConflict

	case errors.Is(err, order.ErrInvalidConfirmation):
		return http.StatusForbidden

	case errors.Is(err, services.ErrZoneNotServed),
		errors.Is(err, services.ErrDistanceExceeded):
		return http.StatusUnprocessableEntity
	}

	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError
	if errors.As(err, &invalid) || errors.As(err, &required) || errors.As(err, &outOfRange) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// respondError writes the uniform error body for a failed request. Internal
// errors are masked; everything else carries the domain error's message.
func respondError(ctx echo.Context, err error) error {
	code := statusFor(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

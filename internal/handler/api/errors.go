package api

import (
	"errors"
	"net/http"

	"rental-booking/internal/domain/booking"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{errs.ErrInvalidWindow, http.StatusBadRequest, "Invalid rental window"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "Idempotency-Key header is required"},
	{errs.ErrVehicleNotFound, http.StatusNotFound, "Vehicle not found"},
	{errs.ErrCustomerNotFound, http.StatusNotFound, "Customer not found"},
	{errs.ErrContractNotFound, http.StatusNotFound, "Contract not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrBookingConflict, http.StatusConflict, "Vehicle is already booked for this window"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "A request with this idempotency key is in progress"},
	{errs.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "Idempotency key was used with a different request"},
	{errs.ErrBackendRejected, http.StatusUnprocessableEntity, "Rental backend rejected the booking"},
	{errs.ErrUnauthorized, http.StatusUnauthorized, "Rental backend rejected the credentials"},
	{errs.ErrBackendUnavailable, http.StatusBadGateway, "Rental backend unavailable"},
	{errs.ErrIdempotencyCheckFailed, http.StatusServiceUnavailable, "Could not record the request, retry later"},
}

// abortWithUseCaseError maps use case errors to HTTP responses.
func abortWithUseCaseError(c *gin.Context, err error) {
	if verr, ok := booking.AsValidationError(err); ok {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed",
			gin.H{"fieldErrors": verr.FieldErrors})
		return
	}

	var conflict *commands.ConflictError
	if errors.As(err, &conflict) {
		httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle is already booked for this window",
			gin.H{"conflicts": resdto.FromConflicts(conflict.Conflicts)})
		return
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

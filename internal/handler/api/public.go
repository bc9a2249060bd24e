package api

import (
	"net/http"

	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// @Summary Public quote
// @Description Quote for the public website. The vehicle's own rate always applies.
// @Tags public
// @Accept json
// @Produce json
// @Param X-Site-Key header string true "Website key"
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /public/quotes [post]
func (h *BookingHandler) PublicQuote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	req.DailyRateOverride = nil
	h.quote(c, req, queries.ChannelPublic)
}

// @Summary Public booking request
// @Description Submit a booking from the public website. It is created as pending.
// @Tags public
// @Accept json
// @Produce json
// @Param X-Site-Key header string true "Website key"
// @Param Idempotency-Key header string true "Idempotency key (UUID)"
// @Param request body reqdto.BookingFormRequest true "Booking form"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /public/bookings [post]
func (h *BookingHandler) PublicSubmit(c *gin.Context) {
	h.submit(c, publicActor, queries.ChannelPublic)
}

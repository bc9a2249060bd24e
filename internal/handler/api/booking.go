package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	publicActor          = "public"
)

type BookingHandler struct {
	quotes       queries.QuoteQueries
	availability queries.AvailabilityQueries
	validation   queries.ValidationQueries
	contracts    queries.ContractQueries
	submissions  commands.SubmissionCommands
}

func NewBookingHandler(
	quotes queries.QuoteQueries,
	availability queries.AvailabilityQueries,
	validation queries.ValidationQueries,
	contracts queries.ContractQueries,
	submissions commands.SubmissionCommands,
) *BookingHandler {
	return &BookingHandler{
		quotes:       quotes,
		availability: availability,
		validation:   validation,
		contracts:    contracts,
		submissions:  submissions,
	}
}

// @Summary Quote a rental
// @Description Price a rental window for a vehicle. Managers may override the daily rate.
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/quotes [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if req.HasRateOverride() {
		role, _ := middleware.GetStaffRole(c)
		if !middleware.HasMinimumRole(role, jwt.RoleManager) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrUnauthorized, "Rate override requires manager role", nil)
			return
		}
	}
	h.quote(c, req, queries.ChannelAdmin)
}

func (h *BookingHandler) quote(c *gin.Context, req reqdto.QuoteRequest, channel string) {
	in, err := req.ToInput(channel)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid daily rate", nil)
		return
	}
	view, err := h.quotes.Quote(c.Request.Context(), in)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary Check availability
// @Description Advisory overlap check against the vehicle's confirmed and active bookings.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AvailabilityRequest true "Availability request"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/availability [post]
func (h *BookingHandler) Availability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.availability.Check(c.Request.Context(), in)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Validate a booking form
// @Description Run every form rule. An invalid form is still a 200 response.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookingFormRequest true "Booking form"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/bookings/validate [post]
func (h *BookingHandler) Validate(c *gin.Context) {
	var req reqdto.BookingFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	form, err := req.ToForm()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.validation.Validate(c.Request.Context(), form)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidationResult(view.Result))
}

// @Summary Submit a booking
// @Description Validate, price and create a confirmed booking on the rental backend.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key (UUID)"
// @Param request body reqdto.BookingFormRequest true "Booking form"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	h.submit(c, staffID, queries.ChannelAdmin)
}

func (h *BookingHandler) submit(c *gin.Context, actor, channel string) {
	key, err := idempotencyKey(c)
	if errs.Is(err, errs.ErrIdempotencyKeyRequired) {
		abortWithUseCaseError(c, err)
		return
	}
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key header must be a UUID", nil)
		return
	}

	var req reqdto.BookingFormRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	form, err := req.ToForm()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.submissions.Submit(c.Request.Context(), commands.SubmitInput{
		Form:           form,
		IdempotencyKey: key,
		Actor:          actor,
		Channel:        channel,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
		c.Header(middleware.IdempotentReplayHeader, "true")
	}
	c.JSON(status, resdto.FromSubmitResult(result))
}

func idempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
	if raw == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}
	return uuid.Parse(raw)
}

// @Summary Download rental contract
// @Description Stream the contract PDF generated by the rental backend.
// @Tags bookings
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {file} file
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/bookings/{id}/contract [get]
func (h *BookingHandler) Contract(c *gin.Context) {
	sink := &responseSink{c: c}
	err := h.contracts.Download(c.Request.Context(), c.Param("id"), sink)
	if err == nil {
		return
	}
	if sink.started {
		// headers are gone; the client sees a truncated body
		_ = c.Error(err)
		c.Abort()
		return
	}
	abortWithUseCaseError(c, err)
}

// responseSink streams a downloaded blob straight into the HTTP response.
type responseSink struct {
	c       *gin.Context
	started bool
}

func (s *responseSink) SaveBlob(filename, contentType string, r io.Reader) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	s.started = true
	s.c.DataFromReader(http.StatusOK, -1, contentType, r, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": filename}),
	})
	return nil
}

//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/vehicle"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/metrics"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

type submissionMocks struct {
	validation  *queriesmock.MockValidationQueries
	backend     *commandsmock.MockBookingBackend
	idempotency *commandsmock.MockIdempotencyRepository
	recorder    *commandsmock.MockRecorder
}

func newSubmission(t *testing.T, policy commands.ConflictPolicy) (commands.SubmissionCommands, submissionMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := submissionMocks{
		validation:  queriesmock.NewMockValidationQueries(ctrl),
		backend:     commandsmock.NewMockBookingBackend(ctrl),
		idempotency: commandsmock.NewMockIdempotencyRepository(ctrl),
		recorder:    commandsmock.NewMockRecorder(ctrl),
	}
	cmd := commands.NewSubmissionCommands(
		m.validation,
		booking.NewDefaultPriceCalculator(booking.DefaultPolicy()),
		m.backend,
		m.idempotency,
		m.recorder,
		booking.DefaultPolicy(),
		commands.SubmissionConfig{ConflictPolicy: policy, IdempotencyTTL: time.Hour},
		clock.NewMockClock(now),
	)
	return cmd, m
}

func form() booking.FormData {
	return booking.FormData{
		CustomerID:     "C1",
		VehicleID:      "V1",
		PickupDate:     "2024-06-01",
		ReturnDate:     "2024-06-03",
		PickupTime:     "08:00",
		ReturnTime:     "10:00",
		PickupLocation: "airport",
		ReturnLocation: "train_station",
	}
}

func validView(t *testing.T, conflicts ...booking.Interval) *queries.ValidationView {
	t.Helper()
	v, err := vehicle.NewVehicle("V1", "Fiat 500", "AA-00-BB", booking.NewMoney(8500), true)
	require.NoError(t, err)
	return &queries.ValidationView{
		Result:  booking.ValidationResult{IsValid: true, FieldErrors: map[string]string{}, Conflicts: conflicts},
		Vehicle: v,
	}
}

func input(channel string) commands.SubmitInput {
	return commands.SubmitInput{
		Form:           form(),
		IdempotencyKey: uuid.MustParse("6f1c2a9e-3b7d-4f51-9c0e-2d8a4b6e1f37"),
		Actor:          "staff-1",
		Channel:        channel,
	}
}

func claimFresh(m submissionMocks) {
	m.idempotency.EXPECT().Claim(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec shared.IdempotencyRecord) (*shared.IdempotencyRecord, bool, error) {
			rec.Status = shared.IdempotencyStatusProcessing
			return &rec, true, nil
		})
}

func TestSubmit_Success(t *testing.T) {
	cmd, m := newSubmission(t, commands.ConflictPolicyWarn)
	in := input(queries.ChannelAdmin)

	m.idempotency.EXPECT().Claim(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec shared.IdempotencyRecord) (*shared.IdempotencyRecord, bool, error) {
			assert.Equal(t, in.IdempotencyKey, rec.Key)
			assert.Equal(t, "staff-1", rec.Actor)
			assert.Equal(t, now.Add(time.Hour), rec.ExpiresAt)
			assert.Len(t, rec.RequestHash, 64)
			return &rec, true, nil
		})
	m.validation.EXPECT().Validate(gomock.Any(), in.Form).Return(validView(t), nil)
	m.backend.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), in.IdempotencyKey.String()).
		DoAndReturn(func(_ context.Context, b shared.NewBooking, _ string) (*shared.CreatedBooking, error) {
			assert.Equal(t, booking.StatusConfirmed, b.Status)
			assert.Equal(t, booking.LocationAirport, b.PickupLocation)
			assert.Equal(t, 3, b.Price.BillableDays)
			assert.Equal(t, int64(25500), b.Price.TotalAmount.Cents())
			assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), b.Span.End)
			return &shared.CreatedBooking{ID: "B100", Status: booking.StatusConfirmed}, nil
		})
	m.idempotency.EXPECT().MarkCompleted(gomock.Any(), in.IdempotencyKey, "staff-1", "B100", gomock.Any()).Return(nil)
	m.recorder.EXPECT().IncSubmission(queries.ChannelAdmin, metrics.OutcomeCreated)

	res, err := cmd.Submit(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "B100", res.BookingID)
	assert.Equal(t, booking.StatusConfirmed, res.Status)
	assert.False(t, res.IsReplayed)
	assert.Empty(t, res.Warnings)
}

func TestSubmit_PublicBookingsArePending(t *testing.T) {
	cmd, m := newSubmission(t, commands.ConflictPolicyWarn)
	in := input(queries.ChannelPublic)

	claimFresh(m)
	m.validation.EXPECT().Validate(gomock.Any(), in.Form).Return(validView(t), nil)
	m.backend.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b shared.NewBooking, _ string) (*shared.CreatedBooking, error) {
			assert.Equal(t, booking.StatusPending, b.Status)
			return &shared.CreatedBooking{ID: "B101", Status: b.Status}, nil
		})
	m.idempotency.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), gomock.Any(), "B101", gomock.Any()).Return(nil)
	m.recorder.EXPECT().IncSubmission(queries.ChannelPublic, metrics.OutcomeCreated)

	res, err := cmd.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, res.Status)
}

func TestSubmit_ReplaysCompletedKey(t *testing.T) {
	cmd, m := newSubmission(t, commands.ConflictPolicyWarn)
	in := input(queries.ChannelAdmin)
	conflict := booking.Interval{ID: "B7", VehicleID: "V1", Status: booking.StatusConfirmed}

	var stored shared.IdempotencyRecord
	m.idempotency.EXPECT().Claim(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec shared.IdempotencyRecord) (*shared.IdempotencyRecord, bool, error) {
			stored = rec
			return &rec, true, nil
		})
	m.validation.EXPECT().Validate(gomock.Any(), in.Form).Return(validView(t, conflict), nil)
	m.backend.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&shared.CreatedBooking{ID: "B100", Status: booking.StatusConfirmed}, nil)
	m.idempotency.EXPECT().MarkCompleted(gomock.Any(), in.IdempotencyKey, "staff-1", "B100", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _, id string, body []byte) error {
			stored.Status = shared.IdempotencyStatusCompleted
			stored.BackendBookingID = &id
			stored.ResponseBody = body
			return nil
		})
	m.recorder.EXPECT().IncSubmission(queries.ChannelAdmin, metrics.OutcomeCreated)

	first, err := cmd.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"B7"}, first.Warnings)

	m.idempotency.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(&stored, false, nil)
	m.recorder.EXPECT().IncSubmission(queries.ChannelAdmin, metrics.OutcomeReplayed)

	second, err := cmd.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, second.IsReplayed)

	second.IsReplayed = false
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(booking.Money{})); diff != "" {
		t.Errorf("replayed result mismatch (-first +second):\n%s", diff)
	}
}

func TestSubmit_ExistingKeyErrors(t *testing.T) {
	in := input(queries.ChannelAdmin)

	cases := []struct {
		name   string
		record func(hash string) *shared.IdempotencyRecord
		want   error
	}{
		{
			name: "key reused with another payload",
			record: func(string) *shared.IdempotencyRecord {
				return &shared.IdempotencyRecord{Key: in.IdempotencyKey, RequestHash: "other", Status: shared.IdempotencyStatusCompleted}
			},
			want: errs.ErrIdempotencyKeyReused,
		},
		{
			name: "same payload still processing",
			record: func(hash string) *shared.IdempotencyRecord {
				return &shared.IdempotencyRecord{Key: in.IdempotencyKey, RequestHash: hash, Status: shared.IdempotencyStatusProcessing}
			},
			want: errs.ErrIdempotencyInProgress,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, m := newSubmission(t, commands.ConflictPolicyWarn)
			m.idempotency.EXPECT().Claim(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, rec shared.IdempotencyRecord) (*shared.IdempotencyRecord, bool, error) {
					return tc.record(rec.RequestHash), false, nil
				})

			_, err := cmd.Submit(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.want))
		})
	}
}

func TestSubmit_MissingKey(t *testing.T) {
	cmd, _ := newSubmission(t, commands.ConflictPolicyWarn)
	in := input(queries.ChannelAdmin)
	in.IdempotencyKey = uuid.Nil

	_, err := cmd.Submit(context.Background(), in)
	assert.True(t, errs.Is(err, errs.ErrIdempotencyKeyRequired))
}

func TestSubmit_ClaimFailure(t *testing.T) {
	cmd, m := newSubmission(t, commands.ConflictPolicyWarn)
	m.idempotency.EXPECT().Claim(gomock.Any(), gomock.Any()).
		Return(nil, false, infra.WrapRepoErr(nil, infra.KindDBFailure, "claim failed", errors.New("connection refused")))
	m.recorder.EXPECT().IncSubmission(queries.ChannelAdmin, metrics.OutcomeError)

	_, err := cmd.Submit(context.Background(), input(queries.ChannelAdmin))
	assert.True(t, errs.Is(err, errs.ErrIdempotencyCheckFailed))
}

func TestSubmit_InvalidFormReleasesKey(t *testing.T) {
	cmd, m := newSubmission(t, commands.ConflictPolicyWarn)
	in := input(queries.ChannelAdmin)

	claimFresh(m)
	m.validation.EXPECT().Validate(gomock.Any(), in.Form).Return(&queries.ValidationView{
		Result: booking.ValidationResult{
			IsValid:     false,
			FieldErrors: map[string]string{booking.FieldCustomerID: booking.MsgCustomerInactive},
		},
	}, nil)
	m.idempotency.EXPECT().Release(gomock.Any(), in.IdempotencyKey, "staff-1").Return(nil)
	m.recorder.EXPECT().IncSubmission(queries.ChannelAdmin, metrics.OutcomeInvalid)

	_, err := cmd.Submit(context.Background(), in)
	require.Error(t, err)

	verr, ok := booking.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, booking.MsgCustomerInactive, verr.FieldErrors[booking.FieldCustomerID])
}

func TestSubmit_RejectPolicyBlocksAdvisoryConflicts(t *testing.T) {
	cmd, m := newSubmission(t, commands.ConflictPolicyReject)
	in := input(queries.ChannelAdmin)
	conflict := booking.Interval{ID: "B7", VehicleID: "V1", Status: booking.StatusActive}

	claimFresh(m)
	m.validation.EXPECT().Validate(gomock.Any(), in.Form).Return(validView(t, conflict), nil)
	m.idempotency.EXPECT().Release(gomock.Any(), in.IdempotencyKey, "staff-1").Return(nil)
	m.recorder.EXPECT().IncSubmission(queries.ChannelAdmin, metrics.OutcomeConflict)

	_, err := cmd.Submit(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrBookingConflict))

	var cerr *commands.ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "B7", cerr.Conflicts[0].ID)
}

func TestSubmit_BackendErrors(t *testing.T) {
	cases := []struct {
		name    string
		kind    infra.RepositoryErrorKind
		outcome string
		want    error
	}{
		{name: "slot taken upstream", kind: infra.KindConflict, outcome: metrics.OutcomeConflict, want: errs.ErrBookingConflict},
		{name: "payload rejected", kind: infra.KindRejected, outcome: metrics.OutcomeRejected, want: errs.ErrBackendRejected},
		{name: "backend down", kind: infra.KindUnavailable, outcome: metrics.OutcomeError, want: errs.ErrBackendUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, m := newSubmission(t, commands.ConflictPolicyWarn)
			in := input(queries.ChannelAdmin)

			claimFresh(m)
			m.validation.EXPECT().Validate(gomock.Any(), in.Form).Return(validView(t), nil)
			m.backend.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, infra.WrapRepoErr(nil, tc.kind, "create booking", errors.New("upstream")))
			m.idempotency.EXPECT().Release(gomock.Any(), in.IdempotencyKey, "staff-1").Return(nil)
			m.recorder.EXPECT().IncSubmission(queries.ChannelAdmin, tc.outcome)

			_, err := cmd.Submit(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.want))
		})
	}
}

func TestNewConflictPolicy(t *testing.T) {
	p, err := commands.NewConflictPolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, commands.ConflictPolicyReject, p)

	_, err = commands.NewConflictPolicy("ignore")
	assert.Error(t, err)
}

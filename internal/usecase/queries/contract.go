package queries

import (
	"context"
	"strings"

	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"
)

type ContractQueries interface {
	Download(ctx context.Context, bookingID string, sink shared.BlobSink) error
}

type contractQueriesImpl struct {
	backend RentalBackend
}

func NewContractQueries(backend RentalBackend) ContractQueries {
	return &contractQueriesImpl{backend: backend}
}

func (q *contractQueriesImpl) Download(ctx context.Context, bookingID string, sink shared.BlobSink) error {
	if strings.TrimSpace(bookingID) == "" {
		return errs.ErrBookingNotFound
	}
	if err := q.backend.DownloadContract(ctx, bookingID, sink); err != nil {
		return shared.MarkBackendError(err, errs.ErrContractNotFound)
	}
	return nil
}

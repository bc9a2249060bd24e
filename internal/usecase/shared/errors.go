package shared

import (
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"
)

// MarkBackendError marks a backend adapter error with the sentinel the handler
// layer understands. notFound is used for KindNotFound.
func MarkBackendError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindUnauthorized):
		return errs.Mark(err, errs.ErrUnauthorized)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrBookingConflict)
	case infra.IsKind(err, infra.KindRejected):
		return errs.Mark(err, errs.ErrBackendRejected)
	default:
		return errs.Mark(err, errs.ErrBackendUnavailable)
	}
}

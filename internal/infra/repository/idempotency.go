package repository

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const idempotencyTable = "idempotency_keys"

var idempotencyColumns = []string{
	"key", "actor", "endpoint", "request_hash", "status",
	"backend_booking_id", "response_body", "expires_at", "created_at",
}

type IdempotencyRepository struct {
	pool   *pgxpool.Pool
	db     db.DBTX
	logger *slog.Logger
	psql   squirrel.StatementBuilderType
}

func NewIdempotencyRepository(pool *pgxpool.Pool, logger *slog.Logger) *IdempotencyRepository {
	return &IdempotencyRepository{
		pool:   pool,
		db:     pool,
		logger: logger,
		psql:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Claim inserts rec, or returns the record already stored under the same key and actor.
func (r *IdempotencyRepository) Claim(ctx context.Context, rec shared.IdempotencyRecord) (*shared.IdempotencyRecord, bool, error) {
	type claim struct {
		existing *shared.IdempotencyRecord
		claimed  bool
	}

	res, err := shared.WithDefaultRetry(ctx, r.pool, func(tx db.DBTX) (claim, error) {
		inserted, err := r.TryInsert(ctx, tx, rec)
		if err != nil {
			return claim{}, err
		}
		if inserted {
			return claim{claimed: true}, nil
		}
		existing, err := r.Get(ctx, tx, rec.Key, rec.Actor)
		if err != nil {
			return claim{}, err
		}
		return claim{existing: existing}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.existing, res.claimed, nil
}

func (r *IdempotencyRepository) conn(tx db.DBTX) db.DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}

// TryInsert claims the key. It reports false when the (key, actor) pair already exists.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, rec shared.IdempotencyRecord) (bool, error) {
	query, args, err := r.psql.Insert(idempotencyTable).
		Columns("key", "actor", "endpoint", "request_hash", "status", "expires_at").
		Values(rec.Key, rec.Actor, rec.Endpoint, rec.RequestHash, string(shared.IdempotencyStatusProcessing), pgconv.TimeToPgtype(rec.ExpiresAt)).
		Suffix("ON CONFLICT (key, actor) DO NOTHING").
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "build insert idempotency key query failed", err)
	}

	tag, err := r.conn(tx).Exec(ctx, query, args...)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to try insert idempotency key", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, tx db.DBTX, key uuid.UUID, actor string) (*shared.IdempotencyRecord, error) {
	query, args, err := r.psql.Select(idempotencyColumns...).
		From(idempotencyTable).
		Where(squirrel.Eq{"key": key, "actor": actor}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "build get idempotency key query failed", err)
	}

	var (
		rec       shared.IdempotencyRecord
		status    string
		bookingID pgtype.Text
		expiresAt pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)
	err = r.conn(tx).QueryRow(ctx, query, args...).Scan(
		&rec.Key, &rec.Actor, &rec.Endpoint, &rec.RequestHash, &status,
		&bookingID, &rec.ResponseBody, &expiresAt, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "idempotency key not found", nil)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get idempotency key", err)
	}

	rec.Status = shared.IdempotencyStatus(status)
	rec.BackendBookingID = pgconv.StringPtrFromPgtype(bookingID)
	rec.ExpiresAt = expiresAt.Time
	rec.CreatedAt = createdAt.Time
	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key uuid.UUID, actor, backendBookingID string, responseBody []byte) error {
	query, args, err := r.psql.Update(idempotencyTable).
		Set("status", string(shared.IdempotencyStatusCompleted)).
		Set("backend_booking_id", pgconv.StringPtrToPgtype(&backendBookingID)).
		Set("response_body", responseBody).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"key": key, "actor": actor}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "build complete idempotency key query failed", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "idempotency key not found", nil)
	}
	return nil
}

// Release drops an unfinished claim so the client can retry with the same key.
func (r *IdempotencyRepository) Release(ctx context.Context, key uuid.UUID, actor string) error {
	query, args, err := r.psql.Delete(idempotencyTable).
		Where(squirrel.Eq{"key": key, "actor": actor, "status": string(shared.IdempotencyStatusProcessing)}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "build release idempotency key query failed", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.psql.Delete(idempotencyTable).
		Where(squirrel.Lt{"expires_at": pgconv.TimeToPgtype(now)}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "build delete expired idempotency keys query failed", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}

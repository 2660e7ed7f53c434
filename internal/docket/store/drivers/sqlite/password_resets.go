package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
)

type passwordResetsRepo struct {
	db dbtx
}

func (r *passwordResetsRepo) CreatePasswordReset(ctx context.Context, pr domain.PasswordReset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (id, user_id, token_hash, expires_at, used_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pr.ID, pr.UserID, pr.TokenHash, ts(pr.ExpiresAt), mapOptionalTime(pr.UsedAt), ts(pr.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *passwordResetsRepo) GetUnusedPasswordResetByHash(ctx context.Context, hash string) (domain.PasswordReset, error) {
	var (
		pr   domain.PasswordReset
		used sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_resets
		WHERE token_hash = ? AND used_at IS NULL`, hash,
	).Scan(&pr.ID, &pr.UserID, &pr.TokenHash, &pr.ExpiresAt, &used, &pr.CreatedAt)
	if err != nil {
		return domain.PasswordReset{}, mapNotFound(err)
	}
	pr.ExpiresAt = pr.ExpiresAt.UTC()
	pr.CreatedAt = pr.CreatedAt.UTC()
	pr.UsedAt = mapNullTimePtr(used)
	return pr, nil
}

func (r *passwordResetsRepo) MarkPasswordResetUsed(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE password_resets SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		ts(at), id,
	))
}

func (r *passwordResetsRepo) DeleteStalePasswordResets(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE used_at IS NOT NULL OR expires_at < ?`,
		ts(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

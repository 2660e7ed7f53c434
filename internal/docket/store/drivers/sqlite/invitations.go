package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, email, role, token_hash, invited_by, organization_id, status,
	created_at, expires_at, accepted_at, accepted_by, resent_at`

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var (
		inv          domain.Invitation
		role, status string
		acceptedAt   sql.NullTime
		acceptedBy   sql.NullString
		resentAt     sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.Email, &role, &inv.TokenHash, &inv.InvitedBy, &inv.OrganizationID, &status,
		&inv.CreatedAt, &inv.ExpiresAt, &acceptedAt, &acceptedBy, &resentAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.AcceptedBy = acceptedBy.String
	inv.ResentAt = mapNullTimePtr(resentAt)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, string(inv.Role), inv.TokenHash, inv.InvitedBy, inv.OrganizationID,
		string(inv.Status), ts(inv.CreatedAt), ts(inv.ExpiresAt),
		mapOptionalTime(inv.AcceptedAt), mapStringNull(inv.AcceptedBy), mapOptionalTime(inv.ResentAt),
	)
	return mapWriteErr(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ? AND status = 'pending'`, hash))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) GetPendingInvitationByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE email = ? AND status = 'pending'`, email))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) ListPendingInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE status = 'pending' AND (? = '' OR organization_id = ?)
		ORDER BY created_at DESC, id DESC`,
		organizationID, organizationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) AcceptInvitation(ctx context.Context, id, userID string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE invitations SET status = 'accepted', accepted_at = ?, accepted_by = ?
		WHERE id = ? AND status = 'pending' AND expires_at >= ?`,
		ts(at), userID, id, ts(at),
	))
}

func (r *invitationsRepo) ExpireInvitation(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE invitations SET status = 'expired' WHERE id = ? AND status = 'pending'`, id))
}

func (r *invitationsRepo) RotateInvitationToken(ctx context.Context, id, tokenHash string, expiresAt, resentAt time.Time) error {
	return mapWriteErr(expectOne(r.db.ExecContext(ctx, `
		UPDATE invitations SET token_hash = ?, expires_at = ?, resent_at = ?
		WHERE id = ? AND status = 'pending'`,
		tokenHash, ts(expiresAt), ts(resentAt), id,
	)))
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = ?`, id))
}

func (r *invitationsRepo) ExpireStaleInvitations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET status = 'expired' WHERE status = 'pending' AND expires_at < ?`,
		ts(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

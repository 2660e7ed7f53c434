package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/jackc/pgx/v5"
)

type invitationsRepo struct {
	db querier
}

const invitationColumns = `id, email, role, token_hash, invited_by, organization_id, status,
	created_at, expires_at, accepted_at, accepted_by, resent_at`

func scanInvitation(row pgx.Row) (domain.Invitation, error) {
	var (
		inv          domain.Invitation
		role, status string
		acceptedBy   *string
	)
	err := row.Scan(
		&inv.ID, &inv.Email, &role, &inv.TokenHash, &inv.InvitedBy, &inv.OrganizationID, &status,
		&inv.CreatedAt, &inv.ExpiresAt, &inv.AcceptedAt, &acceptedBy, &inv.ResentAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.AcceptedAt = utcPtr(inv.AcceptedAt)
	inv.AcceptedBy = deref(acceptedBy)
	inv.ResentAt = utcPtr(inv.ResentAt)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		inv.ID, inv.Email, string(inv.Role), inv.TokenHash, inv.InvitedBy, inv.OrganizationID,
		string(inv.Status), inv.CreatedAt.UTC(), inv.ExpiresAt.UTC(),
		utcPtr(inv.AcceptedAt), nullable(inv.AcceptedBy), utcPtr(inv.ResentAt),
	)
	return mapWriteErr(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = $1`, id))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = $1 AND status = 'pending'`, hash))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) GetPendingInvitationByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE email = $1 AND status = 'pending'`, email))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) ListPendingInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE status = 'pending' AND ($1::text = '' OR organization_id = $1::text)
		ORDER BY created_at DESC, id DESC`,
		organizationID,
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
	return expectOne(r.db.Exec(ctx, `
		UPDATE invitations SET status = 'accepted', accepted_at = $1, accepted_by = $2
		WHERE id = $3 AND status = 'pending' AND expires_at >= $1`,
		at.UTC(), userID, id,
	))
}

func (r *invitationsRepo) ExpireInvitation(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx,
		`UPDATE invitations SET status = 'expired' WHERE id = $1 AND status = 'pending'`, id))
}

func (r *invitationsRepo) RotateInvitationToken(ctx context.Context, id, tokenHash string, expiresAt, resentAt time.Time) error {
	return mapWriteErr(expectOne(r.db.Exec(ctx, `
		UPDATE invitations SET token_hash = $1, expires_at = $2, resent_at = $3
		WHERE id = $4 AND status = 'pending'`,
		tokenHash, expiresAt.UTC(), resentAt.UTC(), id,
	)))
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, id))
}

func (r *invitationsRepo) ExpireStaleInvitations(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE invitations SET status = 'expired' WHERE status = 'pending' AND expires_at < $1`,
		now.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

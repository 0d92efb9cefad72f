package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

var (
	// ErrCredentialNotFound is returned when an operation references a
	// credential id that has no row.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrDuplicateSecret is returned when inserting a secret that already
	// exists in the pool.
	ErrDuplicateSecret = errors.New("credential secret already exists")
)

const credentialColumns = `id, name, api_key, quota_used, is_active, created_at, updated_at, last_used_at`

type CredentialRepo struct {
	pool *pgxpool.Pool
}

func NewCredentialRepo(pool *pgxpool.Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

// ListActiveBelowThreshold returns active credentials with quota headroom,
// ordered by ascending id so selection is stable and deterministic.
func (r *CredentialRepo) ListActiveBelowThreshold(ctx context.Context, threshold int) ([]model.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM api_credentials
		WHERE is_active = true AND quota_used < $1
		ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCredentials(rows)
}

// ListAll returns every credential, active or not, ordered by id.
func (r *CredentialRepo) ListAll(ctx context.Context) ([]model.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM api_credentials
		ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCredentials(rows)
}

// IncrementUsage adds units to the stored counter in a single UPDATE so
// concurrent increments never lose updates to a stale read.
func (r *CredentialRepo) IncrementUsage(ctx context.Context, id int64, units int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE api_credentials
		SET quota_used = quota_used + $2, last_used_at = NOW(), updated_at = NOW()
		WHERE id = $1`,
		id, units)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// Deactivate flips is_active off. Rows are never deleted so quota history
// survives invalidation.
func (r *CredentialRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE api_credentials
		SET is_active = false, updated_at = NOW()
		WHERE id = $1`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// Insert stores a new credential with a zeroed counter. The secret is
// unique across the pool.
func (r *CredentialRepo) Insert(ctx context.Context, name, key string) (*model.Credential, error) {
	var cred model.Credential
	err := r.pool.QueryRow(ctx, `
		INSERT INTO api_credentials (name, api_key)
		VALUES ($1, $2)
		ON CONFLICT (api_key) DO NOTHING
		RETURNING `+credentialColumns,
		name, key).Scan(
		&cred.ID, &cred.Name, &cred.Key, &cred.QuotaUsed, &cred.IsActive,
		&cred.CreatedAt, &cred.UpdatedAt, &cred.LastUsedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDuplicateSecret
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// UsageStats returns the per-credential quota report for active credentials.
func (r *CredentialRepo) UsageStats(ctx context.Context) ([]model.QuotaUsage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, quota_used
		FROM api_credentials
		WHERE is_active = true
		ORDER BY quota_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.QuotaUsage
	for rows.Next() {
		var u model.QuotaUsage
		if err := rows.Scan(&u.Name, &u.QuotaUsed); err != nil {
			return nil, err
		}
		stats = append(stats, u)
	}
	return stats, rows.Err()
}

// ResetAll zeroes every counter. Administrative operation only; nothing in
// the request path calls this.
func (r *CredentialRepo) ResetAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE api_credentials
		SET quota_used = 0, updated_at = NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanCredentials(rows pgx.Rows) ([]model.Credential, error) {
	var creds []model.Credential
	for rows.Next() {
		var c model.Credential
		err := rows.Scan(
			&c.ID, &c.Name, &c.Key, &c.QuotaUsed, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt, &c.LastUsedAt,
		)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

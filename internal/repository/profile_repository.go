package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hassansardar246/eclero-availability-api/internal/models"
)

// ProfileRepository resolves marketplace profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByEmail returns the profile matching the given email.
// sql.ErrNoRows passes through so the service can map it to a 404.
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const query = `SELECT id, email, full_name FROM profiles WHERE LOWER(email) = LOWER($1)`
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, email); err != nil {
		return nil, err
	}
	return &profile, nil
}

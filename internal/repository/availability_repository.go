package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hassansardar246/eclero-availability-api/internal/models"
)

// AvailabilityRepository reads weekly availability rules and
// date-specific exceptions. The resolver never writes; rule editing
// belongs to the profile management surface.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListActiveWeeklyRules returns the tutor's active weekly rules ordered
// by day-of-week then start time.
func (r *AvailabilityRepository) ListActiveWeeklyRules(ctx context.Context, tutorID string) ([]models.WeeklyAvailabilityRule, error) {
	const query = `SELECT id, tutor_id, day_of_week, start_time, end_time, timezone, is_active, created_at, updated_at
FROM weekly_availability_rules
WHERE tutor_id = $1 AND is_active = TRUE
ORDER BY day_of_week ASC, start_time ASC`
	var rules []models.WeeklyAvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, tutorID); err != nil {
		return nil, fmt.Errorf("list weekly availability rules: %w", err)
	}
	return rules, nil
}

// ListExceptions returns every exception for the tutor. Date filtering
// happens in the resolver, which must interpret each exception's date
// in its own timezone.
func (r *AvailabilityRepository) ListExceptions(ctx context.Context, tutorID string) ([]models.AvailabilityException, error) {
	const query = `SELECT id, tutor_id, date, start_time, end_time, timezone, is_active, created_at, updated_at
FROM availability_exceptions
WHERE tutor_id = $1`
	var exceptions []models.AvailabilityException
	if err := r.db.SelectContext(ctx, &exceptions, query, tutorID); err != nil {
		return nil, fmt.Errorf("list availability exceptions: %w", err)
	}
	return exceptions, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/bad-bets/internal/database"
	"github.com/yourusername/bad-bets/internal/models"
)

// PostgresLeadRepository implements LeadRepository for PostgreSQL
type PostgresLeadRepository struct {
	db *database.DB
}

// NewPostgresLeadRepository creates a new lead repository
func NewPostgresLeadRepository(db *database.DB) LeadRepository {
	return &PostgresLeadRepository{db: db}
}

// Create inserts a new lead. An existing email yields models.ErrDuplicateLead.
func (r *PostgresLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (id, email, source, sport, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`

	tag, err := r.db.GetPool().Exec(ctx, query,
		lead.ID, lead.Email, lead.Source, lead.Sport, lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDuplicateLead
	}

	return nil
}

// GetByEmail retrieves a lead by its normalised email
func (r *PostgresLeadRepository) GetByEmail(ctx context.Context, email string) (*models.Lead, error) {
	query := `
		SELECT id, email, source, sport, created_at
		FROM leads WHERE email = $1
	`

	lead := &models.Lead{}
	err := r.db.GetPool().QueryRow(ctx, query, email).Scan(
		&lead.ID, &lead.Email, &lead.Source, &lead.Sport, &lead.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

// ListRecent returns up to limit leads, newest first. limit <= 0 returns all.
func (r *PostgresLeadRepository) ListRecent(ctx context.Context, limit int) ([]*models.Lead, error) {
	query := `
		SELECT id, email, source, sport, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`

	// LIMIT NULL is no limit.
	var limitArg interface{}
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.db.GetPool().Query(ctx, query, limitArg)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead := &models.Lead{}
		if err := rows.Scan(&lead.ID, &lead.Email, &lead.Source, &lead.Sport, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, nil
}

// Count returns the number of stored leads
func (r *PostgresLeadRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return n, nil
}

// Ping verifies the backing database is reachable
func (r *PostgresLeadRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

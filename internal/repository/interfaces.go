package repository

import (
	"context"

	"github.com/yourusername/bad-bets/internal/models"
)

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByEmail(ctx context.Context, email string) (*models.Lead, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Lead, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

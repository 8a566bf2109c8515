package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/yourusername/bad-bets/internal/models"
)

// MemoryLeadRepository keeps leads in process memory
type MemoryLeadRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.Lead
}

// NewMemoryLeadRepository creates an empty in-memory lead repository
func NewMemoryLeadRepository() LeadRepository {
	return &MemoryLeadRepository{byEmail: make(map[string]*models.Lead)}
}

// Create stores a copy of lead. An existing email yields models.ErrDuplicateLead.
func (r *MemoryLeadRepository) Create(_ context.Context, lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[lead.Email]; exists {
		return models.ErrDuplicateLead
	}
	stored := *lead
	r.byEmail[lead.Email] = &stored
	return nil
}

// GetByEmail retrieves a lead by its normalised email
func (r *MemoryLeadRepository) GetByEmail(_ context.Context, email string) (*models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.byEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *lead
	return &out, nil
}

// ListRecent returns up to limit leads, newest first. limit <= 0 returns all.
func (r *MemoryLeadRepository) ListRecent(_ context.Context, limit int) ([]*models.Lead, error) {
	r.mu.RLock()
	leads := make([]*models.Lead, 0, len(r.byEmail))
	for _, lead := range r.byEmail {
		out := *lead
		leads = append(leads, &out)
	}
	r.mu.RUnlock()

	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	if limit > 0 && len(leads) > limit {
		leads = leads[:limit]
	}
	return leads, nil
}

// Count returns the number of stored leads
func (r *MemoryLeadRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail), nil
}

// Ping always succeeds
func (r *MemoryLeadRepository) Ping(context.Context) error {
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/bad-bets/internal/logger"
	"github.com/yourusername/bad-bets/internal/metrics"
	"github.com/yourusername/bad-bets/internal/models"
	"github.com/yourusername/bad-bets/internal/repository"
)

// ErrInvalidLead is returned when a subscription request fails validation.
var ErrInvalidLead = errors.New("invalid subscription")

// LeadRequest is an alert subscription as submitted by a visitor.
type LeadRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
	Sport  string `json:"sport"`
}

// LeadService captures alert subscriptions.
type LeadService struct {
	repo     repository.LeadRepository
	audit    *logger.AuditLogger
	validate *validator.Validate
	now      func() time.Time
}

// NewLeadService creates a lead service. audit may be nil.
func NewLeadService(repo repository.LeadRepository, audit *logger.AuditLogger) *LeadService {
	return &LeadService{
		repo:     repo,
		audit:    audit,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Subscribe normalises, validates and stores a subscription. A second
// subscription for the same email returns models.ErrDuplicateLead.
func (s *LeadService) Subscribe(ctx context.Context, req LeadRequest) (*models.Lead, error) {
	lead := &models.Lead{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Source:    strings.TrimSpace(req.Source),
		Sport:     strings.TrimSpace(req.Sport),
		CreatedAt: s.now().UTC(),
	}

	if err := s.validate.Struct(lead); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return nil, fmt.Errorf("%w: %s failed %q", ErrInvalidLead, strings.ToLower(fe.Field()), fe.Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLead, err)
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		if errors.Is(err, models.ErrDuplicateLead) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to store lead: %w", err)
	}

	metrics.RecordLeadCaptured(lead.Source)
	if s.audit != nil {
		s.audit.LogLeadCaptured(lead.ID.String(), lead.Email, lead.Source, lead.Sport, lead.CreatedAt)
	}
	return lead, nil
}

// Count returns the number of stored subscriptions.
func (s *LeadService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Lookup returns the subscription for email, normalised the way Subscribe
// stores it. An unknown email yields models.ErrNotFound.
func (s *LeadService) Lookup(ctx context.Context, email string) (*models.Lead, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Recent returns up to limit subscriptions, newest first. limit <= 0 returns
// all of them.
func (s *LeadService) Recent(ctx context.Context, limit int) ([]*models.Lead, error) {
	leads, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

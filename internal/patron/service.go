package patron

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Input carries the editable fields of a patron. An empty Status means ACTIVE.
type Input struct {
	Name       string
	Email      string
	NationalID string
	Status     Status
}

func (in Input) normalized() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.NationalID = strings.TrimSpace(in.NationalID)
	if in.Status == "" {
		in.Status = StatusActive
	}
	return in
}

func (s *Service) Create(ctx context.Context, in Input) (Patron, error) {
	in = in.normalized()
	now := s.now()
	p := &Patron{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		NationalID:   in.NationalID,
		Status:       in.Status,
		RegisteredAt: now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Patron{}, err
	}
	return *p, nil
}

func (s *Service) Get(ctx context.Context, id string) (Patron, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q Query) ([]Patron, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Patron, error) {
	in = in.normalized()
	return s.repo.Update(ctx, id, func(p *Patron) error {
		p.Name = in.Name
		p.Email = in.Email
		p.NationalID = in.NationalID
		p.Status = in.Status
		p.UpdatedAt = s.now()
		return nil
	})
}

// Delete removes a patron without ACTIVE loans. Returned loans keep the
// patron's name and lose the reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id, func(activeLoans int) error {
		if activeLoans > 0 {
			return ErrHasActiveLoans
		}
		return nil
	})
}

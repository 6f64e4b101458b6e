package service

import (
	"context"
	"errors"
	"time"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/internal/repository"
)

type TicketPrice struct {
	Price          int
	TicketTypeName string
	TicketTypeID   uint
}

type PricingSvc struct {
	repo PricingRepository
	now  func() time.Time
}

func NewPricingSvc(repo PricingRepository) *PricingSvc {
	return &PricingSvc{repo: repo, now: time.Now}
}

// PriceForEvent resolves the applicable price: by explicit ticket type id when
// given, otherwise by the validity window containing the current date. Never
// returns a partial price on failure.
func (s *PricingSvc) PriceForEvent(ctx context.Context, eventID string, ticketTypeID uint) (*TicketPrice, error) {
	row, err := s.lookup(ctx, eventID, ticketTypeID)
	if errors.Is(err, repository.ErrNoTicketType) {
		return nil, ErrNoTicketType
	}
	if err != nil {
		return nil, NewError(CodeStorage, err.Error())
	}
	return &TicketPrice{
		Price:          row.Price,
		TicketTypeName: row.TicketType.Name,
		TicketTypeID:   row.TicketTypeID,
	}, nil
}

func (s *PricingSvc) lookup(ctx context.Context, eventID string, ticketTypeID uint) (*domain.EventTicketType, error) {
	if ticketTypeID != 0 {
		return s.repo.PriceByType(ctx, eventID, ticketTypeID)
	}
	return s.repo.PriceByDate(ctx, eventID, s.now())
}

package service

import (
	"context"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/pkg/logger"
)

type SubscriptionSvc struct {
	bookings BookingRepository
	subs     SubscriptionRepository
	log      logger.Logger
}

func NewSubscriptionSvc(bookings BookingRepository, subs SubscriptionRepository, log logger.Logger) *SubscriptionSvc {
	return &SubscriptionSvc{bookings: bookings, subs: subs, log: log}
}

// CreateDayPass inserts one day-pass subscription per distinct date among the
// referenced day-pass eligible bookings. Every expected failure is a returned
// error; there is no thrown/returned split.
func (s *SubscriptionSvc) CreateDayPass(ctx context.Context, userID string, bookingIDs []string) ([]domain.Subscription, error) {
	if userID == "" || len(bookingIDs) == 0 {
		return nil, NewError(CodeValidation, "Missing user or booking ids")
	}

	dates, err := s.bookings.DistinctDayPassDates(ctx, bookingIDs)
	if err != nil {
		return nil, NewError(CodeStorage, err.Error())
	}
	if len(dates) == 0 {
		return nil, ErrNoDayPassBookings
	}

	rows := make([]domain.Subscription, len(dates))
	for i, d := range dates {
		rows[i] = domain.Subscription{UserID: userID, Date: d}
	}
	inserted, err := s.subs.InsertBatch(ctx, rows)
	if err != nil {
		return nil, NewError(CodeStorage, err.Error())
	}
	s.log.Info("day passes created", "user_id", userID, "count", len(inserted))
	return inserted, nil
}

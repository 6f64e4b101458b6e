package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/eventpass/internal/domain"
)

var ErrNoTicketType = errors.New("no ticket type available")

type EventRepo struct{ db *gorm.DB }

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Event{}, &domain.TicketType{}, &domain.EventTicketType{})
}

func (r *EventRepo) ByID(ctx context.Context, id string) (*domain.Event, error) {
	var ev domain.Event
	if err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepo) PriceByType(ctx context.Context, eventID string, ticketTypeID uint) (*domain.EventTicketType, error) {
	var row domain.EventTicketType
	err := r.db.WithContext(ctx).Preload("TicketType").
		Where("event_id = ? AND ticket_type_id = ?", eventID, ticketTypeID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoTicketType
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// PriceByDate picks the priced row whose validity window contains now.
func (r *EventRepo) PriceByDate(ctx context.Context, eventID string, now time.Time) (*domain.EventTicketType, error) {
	var row domain.EventTicketType
	err := r.db.WithContext(ctx).Preload("TicketType").
		Where("event_id = ? AND start_date <= ? AND end_date >= ?", eventID, now, now).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoTicketType
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

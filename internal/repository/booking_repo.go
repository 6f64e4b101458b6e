package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/eventpass/internal/domain"
)

// BookingRepo works against the schema-qualified seasonal bookings table.
// An empty schema falls back to the bare table name (sqlite tests).
type BookingRepo struct {
	db     *gorm.DB
	schema string
}

func NewBookingRepo(db *gorm.DB, schema string) *BookingRepo {
	return &BookingRepo{db: db, schema: schema}
}

func (r *BookingRepo) table() string {
	if r.schema == "" {
		return "bookings"
	}
	return r.schema + ".bookings"
}

func (r *BookingRepo) Migrate() error {
	return r.db.Table(r.table()).AutoMigrate(&domain.Booking{})
}

func (r *BookingRepo) InsertBatch(ctx context.Context, rows []domain.Booking) ([]domain.Booking, error) {
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.NewString()
		}
	}
	if err := r.db.WithContext(ctx).Table(r.table()).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) ConfirmByIDs(ctx context.Context, ids []string, transactionID string) error {
	return r.db.WithContext(ctx).Table(r.table()).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": domain.StatusConfirmed, "transaction_id": transactionID}).Error
}

func (r *BookingRepo) ByIDs(ctx context.Context, ids []string) ([]domain.Booking, error) {
	var rows []domain.Booking
	if err := r.db.WithContext(ctx).Table(r.table()).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DistinctDayPassDates returns the distinct booking dates among the given ids
// that are flagged day-pass eligible.
func (r *BookingRepo) DistinctDayPassDates(ctx context.Context, ids []string) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).Table(r.table()).
		Where("id IN ? AND day_pass = ?", ids, true).
		Order("booking_date").
		Distinct().
		Pluck("booking_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/eventpass/internal/domain"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionRepo struct{ db *gorm.DB }

func NewTransactionRepo(db *gorm.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (r *TransactionRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Transaction{})
}

func (r *TransactionRepo) Insert(ctx context.Context, t *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepo) ByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) MarkSettled(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ?", id).
		Update("status", "SETTLED").Error
}

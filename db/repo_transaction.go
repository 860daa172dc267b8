package db

import (
	"context"
	"time"

	"library-lending/models"
)

type transactionStore struct{ r *Repo }

func (s transactionStore) GetAll(ctx context.Context) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.r.DB.WithContext(ctx).Order("borrowed_at").Find(&txns).Error
	return txns, err
}

func (s transactionStore) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.r.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, normalizeNotFound(err)
	}
	return &t, nil
}

func (s transactionStore) Add(ctx context.Context, txn *models.Transaction) error {
	return s.r.DB.WithContext(ctx).Create(txn).Error
}

func (s transactionStore) Update(ctx context.Context, txn *models.Transaction) error {
	return s.r.DB.WithContext(ctx).Save(txn).Error
}

func (s transactionStore) FindOpen(ctx context.Context, bookID, memberID string) (*models.Transaction, error) {
	var t models.Transaction
	err := s.r.scoped(ctx).
		Where("book_id = ? AND member_id = ? AND returned_at IS NULL", bookID, memberID).
		First(&t).Error
	if err != nil {
		return nil, normalizeNotFound(err)
	}
	return &t, nil
}

func (s transactionStore) ListOverdue(ctx context.Context, now time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.r.DB.WithContext(ctx).
		Where("returned_at IS NULL AND due_at < ?", now).
		Order("borrowed_at").
		Find(&txns).Error
	return txns, err
}

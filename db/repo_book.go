package db

import (
	"context"
	"fmt"
	"strings"

	"library-lending/models"
)

type bookStore struct{ r *Repo }

func (s bookStore) GetAll(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := s.r.DB.WithContext(ctx).Order("created_at").Find(&books).Error
	return books, err
}

func (s bookStore) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := s.r.scoped(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, normalizeNotFound(err)
	}
	return &b, nil
}

func (s bookStore) Add(ctx context.Context, book *models.Book) error {
	return s.r.DB.WithContext(ctx).Create(book).Error
}

func (s bookStore) Update(ctx context.Context, book *models.Book) error {
	// Full replace by id. GORM reports no error for unknown ids, which
	// matches the store contract: updates of absent records fail silently.
	return s.r.DB.WithContext(ctx).Save(book).Error
}

func (s bookStore) Delete(ctx context.Context, id string) error {
	return s.r.DB.WithContext(ctx).Delete(&models.Book{}, "id = ?", id).Error
}

func (s bookStore) Search(ctx context.Context, title, author, category string) ([]models.Book, error) {
	q := s.r.DB.WithContext(ctx).Model(&models.Book{})
	if t := strings.TrimSpace(title); t != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(t)+"%")
	}
	if a := strings.TrimSpace(author); a != "" {
		q = q.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(a)+"%")
	}
	if c := strings.TrimSpace(category); c != "" {
		q = q.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(c)+"%")
	}
	var books []models.Book
	err := q.Order("created_at").Find(&books).Error
	return books, err
}

func (s bookStore) GetBorrowedByMember(ctx context.Context, memberID string) ([]models.Book, error) {
	var books []models.Book
	err := s.r.DB.WithContext(ctx).
		Where(fmt.Sprintf(
			"id IN (SELECT book_id FROM %s WHERE member_id = ? AND returned_at IS NULL)",
			models.TransactionTable,
		), memberID).
		Find(&books).Error
	return books, err
}

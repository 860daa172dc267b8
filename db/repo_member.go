package db

import (
	"context"

	"library-lending/models"
)

type memberStore struct{ r *Repo }

func (s memberStore) GetAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := s.r.DB.WithContext(ctx).Order("created_at").Find(&members).Error
	return members, err
}

func (s memberStore) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var m models.Member
	if err := s.r.scoped(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, normalizeNotFound(err)
	}
	return &m, nil
}

func (s memberStore) Add(ctx context.Context, member *models.Member) error {
	return s.r.DB.WithContext(ctx).Create(member).Error
}

func (s memberStore) Update(ctx context.Context, member *models.Member) error {
	return s.r.DB.WithContext(ctx).Save(member).Error
}

func (s memberStore) Delete(ctx context.Context, id string) error {
	return s.r.DB.WithContext(ctx).Delete(&models.Member{}, "id = ?", id).Error
}

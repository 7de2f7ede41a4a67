package repository

import (
	"context"

	"gorm.io/gorm"

	"gumeo/internal/domain"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientRepository) GetByID(ctx context.Context, id, userID string) (*domain.Patient, error) {
	var p domain.Patient
	if err := r.db.WithContext(ctx).First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) ListByUser(ctx context.Context, userID string) ([]domain.Patient, error) {
	var list []domain.Patient
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PatientRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Patient{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *PatientRepository) Update(ctx context.Context, p *domain.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PatientRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Patient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

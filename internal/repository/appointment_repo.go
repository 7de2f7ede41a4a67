package repository

import (
	"context"

	"gorm.io/gorm"

	"gumeo/internal/domain"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id, userID string) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	var list []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("appointment_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AppointmentRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

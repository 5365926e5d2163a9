package repository

import (
	"fmt"

	"gorm.io/gorm"

	"askpilot/internal/model"
)

type QARecordRepository struct {
	db *gorm.DB
}

func NewQARecordRepository(db *gorm.DB) *QARecordRepository {
	return &QARecordRepository{db: db}
}

func (r *QARecordRepository) Create(record *model.QARecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create qa record failed: %w", err)
	}
	return nil
}

func (r *QARecordRepository) ListByUsername(username string, limit int) ([]model.QARecord, error) {
	var records []model.QARecord
	q := r.db.Where("username = ?", username).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list qa records failed: %w", err)
	}
	return records, nil
}

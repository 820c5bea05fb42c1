package repository

import (
	"context"

	"umkm-kembar-barokah/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditRepository interface {
	FindAll(ctx context.Context, filter AuditFilter) ([]model.AuditData, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuditData, error)

	Lookup(tx *gorm.DB, id uuid.UUID) (*model.AuditData, error)
	Create(tx *gorm.DB, entry *model.AuditData) error
	Save(tx *gorm.DB, entry *model.AuditData) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type AuditFilter struct {
	ProductID *uuid.UUID
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) FindAll(ctx context.Context, filter AuditFilter) ([]model.AuditData, error) {
	var entries []model.AuditData
	q := r.db.WithContext(ctx).Preload("Product")
	if filter.ProductID != nil {
		q = q.Where("produk_id = ?", *filter.ProductID)
	}
	err := q.Order("tanggal DESC").Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *auditRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AuditData, error) {
	var entry model.AuditData
	if err := r.db.WithContext(ctx).Preload("Product").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *auditRepo) Lookup(tx *gorm.DB, id uuid.UUID) (*model.AuditData, error) {
	var entry model.AuditData
	if err := tx.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *auditRepo) Create(tx *gorm.DB, entry *model.AuditData) error {
	return tx.Omit(clause.Associations).Create(entry).Error
}

func (r *auditRepo) Save(tx *gorm.DB, entry *model.AuditData) error {
	return tx.Omit(clause.Associations).Save(entry).Error
}

func (r *auditRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.AuditData{}, "id = ?", id).Error
}

package repository

import (
	"context"

	"umkm-kembar-barokah/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, product *model.Product, correctStock bool) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Stats(ctx context.Context) (*DashboardStats, error)

	// Stock mutations take the caller's *gorm.DB so they can join a transaction.
	Lookup(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Restock(tx *gorm.DB, id uuid.UUID, qty int, updatedBy string) (int64, error)
	Withdraw(tx *gorm.DB, id uuid.UUID, qty int, updatedBy string) (bool, error)
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	TotalValuation int64 `json:"total_valuation"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.Lookup(r.db.WithContext(ctx), id)
}

// Update writes the editable columns only. stok_tersedia is written only for a
// manual correction, so concurrent sales are never overwritten.
func (r *productRepo) Update(ctx context.Context, product *model.Product, correctStock bool) error {
	columns := []string{"nama_produk", "detail_produk", "harga_satuan", "unit", "gambar", "updated_by"}
	if correctStock {
		columns = append(columns, "stok_tersedia")
	}
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.ID).
		Select(columns).
		Updates(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *productRepo) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("stok_tersedia < ?", model.LowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Select("COALESCE(SUM(stok_tersedia * harga_satuan), 0)").Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *productRepo) Lookup(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Restock adds qty back to the product. Zero rows affected means the product
// no longer exists.
func (r *productRepo) Restock(tx *gorm.DB, id uuid.UUID, qty int, updatedBy string) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stok_tersedia": gorm.Expr("stok_tersedia + ?", qty),
			"updated_by":    updatedBy,
		})
	return res.RowsAffected, res.Error
}

// Withdraw decrements stock only if enough is left, in a single statement.
// It reports false when the row is missing or the stock is too low.
func (r *productRepo) Withdraw(tx *gorm.DB, id uuid.UUID, qty int, updatedBy string) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stok_tersedia >= ?", id, qty).
		Updates(map[string]interface{}{
			"stok_tersedia": gorm.Expr("stok_tersedia - ?", qty),
			"updated_by":    updatedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

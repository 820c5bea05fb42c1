package repository

import (
	"fmt"

	"umkm-kembar-barokah/internal/model"

	"gorm.io/gorm"
)

// Migrate creates the schema and rewrites the legacy "pemasukan" kind to the
// canonical "penjualan". It returns the number of rewritten ledger rows.
func Migrate(db *gorm.DB) (int64, error) {
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Customer{}, &model.AuditData{}); err != nil {
		return 0, fmt.Errorf("auto migrate: %w", err)
	}

	res := db.Model(&model.AuditData{}).
		Where("LOWER(jenis_transaksi) = ?", "pemasukan").
		UpdateColumn("jenis_transaksi", model.KindSale)
	if res.Error != nil {
		return 0, fmt.Errorf("normalize legacy kinds: %w", res.Error)
	}

	return res.RowsAffected, nil
}

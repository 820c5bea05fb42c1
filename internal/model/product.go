package model

import "time"

// DefaultUnit dipakai jika produk atau pengeluaran tidak menyebut satuan.
const DefaultUnit = "Pcs"

// LowStockThreshold menandai produk yang perlu diproduksi ulang.
const LowStockThreshold = 10

type Product struct {
	BaseModel
	Name           string    `gorm:"column:nama_produk;type:varchar(255);not null" json:"nama_produk"`
	Detail         string    `gorm:"column:detail_produk;type:text" json:"detail_produk"`
	ProductionDate time.Time `gorm:"column:tanggal_produksi;type:date" json:"tanggal_produksi"`
	ProducedQty    int       `gorm:"column:jumlah_produksi;not null" json:"jumlah_produksi"`
	Stock          int       `gorm:"column:stok_tersedia;default:0" json:"stok_tersedia"`
	Price          int64     `gorm:"column:harga_satuan;default:0" json:"harga_satuan"`
	Unit           string    `gorm:"column:unit;type:varchar(20)" json:"unit"`
	Image          *string   `gorm:"column:gambar;type:varchar(255)" json:"gambar"`
}

func (Product) TableName() string {
	return "produk"
}

// UnitOrDefault returns the product unit label, falling back to Pcs.
func (p *Product) UnitOrDefault() string {
	if p.Unit == "" {
		return DefaultUnit
	}
	return p.Unit
}

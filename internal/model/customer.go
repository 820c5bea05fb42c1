package model

import "github.com/google/uuid"

// Customer references a product by id only; the reference is not checked
// against the produk table when written.
type Customer struct {
	BaseModel
	Name      string    `gorm:"column:nama;type:varchar(255);not null" json:"nama"`
	ProductID uuid.UUID `gorm:"column:produk_id;type:uuid;index" json:"produk_id"`
	Address   string    `gorm:"column:alamat;type:text" json:"alamat"`
}

func (Customer) TableName() string {
	return "customers"
}

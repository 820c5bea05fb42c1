package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionKind string

const (
	KindSale    TransactionKind = "penjualan"
	KindExpense TransactionKind = "pengeluaran"

	// legacyKindIncome is the old spelling of KindSale still present in
	// imported rows.
	legacyKindIncome = "pemasukan"
)

// ParseKind normalises a raw jenis_transaksi value. The legacy "pemasukan"
// spelling maps to KindSale.
func ParseKind(raw string) (TransactionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(KindSale), legacyKindIncome:
		return KindSale, true
	case string(KindExpense):
		return KindExpense, true
	}
	return "", false
}

// AuditData is one row of the income/expense ledger.
// Sales carry ProductID, expenses carry Source; never both.
type AuditData struct {
	BaseModel
	ProductID *uuid.UUID      `gorm:"column:produk_id;type:uuid;index" json:"produk_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"-"`
	Source    *string         `gorm:"column:sumber_pengeluaran;type:varchar(255)" json:"sumber_pengeluaran"`
	Date      time.Time       `gorm:"column:tanggal;type:date;not null;index" json:"tanggal"`
	Kind      TransactionKind `gorm:"column:jenis_transaksi;type:varchar(20);not null" json:"jenis_transaksi"`
	Quantity  int             `gorm:"column:jumlah;not null" json:"jumlah"`
	Unit      *string         `gorm:"column:satuan;type:varchar(20)" json:"satuan"`
	UnitPrice int64           `gorm:"column:harga_satuan;not null" json:"harga_satuan"`
	Total     int64           `gorm:"column:total_pendapatan;not null" json:"total_pendapatan"`
	Note      string          `gorm:"column:keterangan;type:text" json:"keterangan"`
}

func (AuditData) TableName() string {
	return "audit_data"
}

// BeforeSave keeps the stored kind canonical and the total derived.
func (a *AuditData) BeforeSave(tx *gorm.DB) error {
	if kind, ok := ParseKind(string(a.Kind)); ok {
		a.Kind = kind
	}
	a.Total = int64(a.Quantity) * a.UnitPrice
	return nil
}

// Ledger is the typed view of an AuditData row: either a Sale or an Expense.
type Ledger interface {
	ledger()
}

// Sale is an income entry tied to a product.
type Sale struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice int64
}

// Expense is a cost entry tied to a free-text source.
type Expense struct {
	Source    string
	Unit      string
	Quantity  int
	UnitPrice int64
}

func (Sale) ledger()    {}
func (Expense) ledger() {}

// Ledger returns the typed variant for the stored kind.
func (a *AuditData) Ledger() Ledger {
	if kind, _ := ParseKind(string(a.Kind)); kind == KindSale {
		sale := Sale{Quantity: a.Quantity, UnitPrice: a.UnitPrice}
		if a.ProductID != nil {
			sale.ProductID = *a.ProductID
		}
		return sale
	}

	exp := Expense{Quantity: a.Quantity, UnitPrice: a.UnitPrice, Unit: DefaultUnit}
	if a.Source != nil {
		exp.Source = *a.Source
	}
	if a.Unit != nil && *a.Unit != "" {
		exp.Unit = *a.Unit
	}
	return exp
}

// ProductRef is the product summary inlined into ledger responses.
type ProductRef struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nama_produk"`
	Unit      string    `json:"unit"`
	UnitPrice int64     `json:"harga_satuan"`
}

// AuditResponse for API responses
type AuditResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID *uuid.UUID      `json:"produk_id"`
	Source    *string         `json:"sumber_pengeluaran"`
	Date      string          `json:"tanggal"`
	Kind      TransactionKind `json:"jenis_transaksi"`
	Quantity  int             `json:"jumlah"`
	Unit      *string         `json:"satuan"`
	UnitPrice int64           `json:"harga_satuan"`
	Total     int64           `json:"total_pendapatan"`
	Note      string          `json:"keterangan"`
	Product   *ProductRef     `json:"produk"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToResponse converts AuditData to AuditResponse
func (a *AuditData) ToResponse() AuditResponse {
	response := AuditResponse{
		ID:        a.ID,
		ProductID: a.ProductID,
		Source:    a.Source,
		Date:      a.Date.Format("2006-01-02"),
		Kind:      a.Kind,
		Quantity:  a.Quantity,
		Unit:      a.Unit,
		UnitPrice: a.UnitPrice,
		Total:     a.Total,
		Note:      a.Note,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if a.Product != nil {
		response.Product = &ProductRef{
			ID:        a.Product.ID,
			Name:      a.Product.Name,
			Unit:      a.Product.UnitOrDefault(),
			UnitPrice: a.Product.Price,
		}
	}

	return response
}

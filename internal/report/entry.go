package report

import (
	"time"

	"umkm-kembar-barokah/internal/model"

	"github.com/google/uuid"
)

const (
	// FallbackShareLabel groups sales without a product name in the share chart.
	FallbackShareLabel = "Lainnya"
	// FallbackTrendLabel groups sales without a product name in the trend table.
	FallbackTrendLabel = "N/A"
)

// Entry is the slice of a ledger row the reports read.
type Entry struct {
	ID          uuid.UUID
	Date        time.Time
	Kind        model.TransactionKind
	HasProduct  bool
	ProductName string
	Unit        string
	Quantity    int
	UnitPrice   int64
	Total       int64
}

// FromAudit maps a stored row, with its product preloaded when present.
func FromAudit(a *model.AuditData) Entry {
	kind, ok := model.ParseKind(string(a.Kind))
	if !ok {
		kind = a.Kind
	}
	e := Entry{
		ID:         a.ID,
		Date:       a.Date,
		Kind:       kind,
		HasProduct: a.ProductID != nil,
		Quantity:   a.Quantity,
		UnitPrice:  a.UnitPrice,
		Total:      a.Total,
	}
	if a.Product != nil {
		e.ProductName = a.Product.Name
		e.Unit = a.Product.UnitOrDefault()
	}
	return e
}

// IsExpense is the single classification rule for the money reports: an entry
// is an expense when it is labelled as one or when it has no product.
func (e Entry) IsExpense() bool {
	return e.Kind == model.KindExpense || !e.HasProduct
}

// IsSale reports whether the entry is labelled as a sale. Quantity reports
// count sales by label only.
func (e Entry) IsSale() bool {
	return e.Kind == model.KindSale
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

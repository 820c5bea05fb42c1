package service

import (
	"context"
	"errors"
	"fmt"

	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/internal/ws"
	"umkm-kembar-barokah/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Actor identifies the authenticated user behind a mutation.
type Actor struct {
	ID   string
	Name string
}

type SaleRequest struct {
	ProductID uuid.UUID `json:"produk_id" validate:"uuid_required"`
	Date      string    `json:"tanggal" validate:"required"`
	Quantity  int       `json:"jumlah" validate:"required,gt=0"`
	Note      string    `json:"keterangan"`
}

type ExpenseRequest struct {
	Source    string `json:"sumber_pengeluaran" validate:"required"`
	Date      string `json:"tanggal" validate:"required"`
	Quantity  int    `json:"jumlah" validate:"required,gt=0"`
	Unit      string `json:"satuan"`
	UnitPrice *int64 `json:"harga_satuan" validate:"omitnil,gte=0"` // nil = not sent; 0 is a valid price
	Note      string `json:"keterangan"`
}

// UpdateAuditRequest carries the fields of both variants. The stored kind of
// the entry decides which of them are required; jenis_transaksi is ignored.
type UpdateAuditRequest struct {
	ProductID uuid.UUID `json:"produk_id"`
	Source    string    `json:"sumber_pengeluaran"`
	Date      string    `json:"tanggal"`
	Quantity  int       `json:"jumlah"`
	Unit      *string   `json:"satuan"`
	UnitPrice *int64    `json:"harga_satuan"`
	Note      string    `json:"keterangan"`
}

type AuditService interface {
	RecordSale(ctx context.Context, req *SaleRequest, actor Actor) (*model.AuditData, error)
	RecordExpense(ctx context.Context, req *ExpenseRequest, actor Actor) (*model.AuditData, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req *UpdateAuditRequest, actor Actor) (*model.AuditData, error)
	DeleteEntry(ctx context.Context, id uuid.UUID, actor Actor) error
	GetEntry(ctx context.Context, id uuid.UUID) (*model.AuditData, error)
	ListEntries(ctx context.Context, filter repository.AuditFilter) ([]model.AuditData, error)
}

type auditService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	wsHub       *ws.Hub
	log         *zap.Logger
	atomic      bool
}

// NewAuditService wires the ledger. With atomic set, each stock-affecting
// operation commits or rolls back as a whole; otherwise statements are applied
// one by one and a failure leaves earlier writes in place.
func NewAuditService(db *gorm.DB, pRepo repository.ProductRepository, aRepo repository.AuditRepository, hub *ws.Hub, log *zap.Logger, atomic bool) AuditService {
	return &auditService{
		db:          db,
		productRepo: pRepo,
		auditRepo:   aRepo,
		wsHub:       hub,
		log:         log,
		atomic:      atomic,
	}
}

func (s *auditService) run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := s.db.WithContext(ctx)
	if !s.atomic {
		return fn(db)
	}
	return db.Transaction(fn)
}

func (s *auditService) RecordSale(ctx context.Context, req *SaleRequest, actor Actor) (*model.AuditData, error) {
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, newValidationError(err.Error())
	}

	var entry *model.AuditData
	var product *model.Product

	err = s.run(ctx, func(tx *gorm.DB) error {
		p, err := s.productRepo.Lookup(tx, req.ProductID)
		if err != nil {
			return lookupErr(err, errProductNotFound, "mengambil produk")
		}
		if p.Stock < req.Quantity {
			return &InsufficientStockError{Available: p.Stock}
		}

		if err := s.withdraw(tx, p.ID, req.Quantity, actor); err != nil {
			return err
		}

		// Harga diambil dari produk, bukan dari client
		productID := p.ID
		entry = &model.AuditData{
			ProductID: &productID,
			Date:      date,
			Kind:      model.KindSale,
			Quantity:  req.Quantity,
			UnitPrice: p.Price,
			Total:     int64(req.Quantity) * p.Price,
			Note:      req.Note,
		}
		entry.CreatedBy = actor.ID
		entry.UpdatedBy = actor.ID

		if err := s.auditRepo.Create(tx, entry); err != nil {
			return storeErr("menyimpan data penjualan", err)
		}

		p.Stock -= req.Quantity
		product = p
		return nil
	})
	if err != nil {
		s.logFailure("record sale", err)
		return nil, err
	}

	entry.Product = product
	s.log.Info("sale recorded",
		zap.String("entry_id", entry.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", entry.Quantity),
		zap.Int("stock_left", product.Stock),
	)
	s.publish("sale_recorded", entry, actor,
		fmt.Sprintf("%s mencatat penjualan %d %s '%s'", actor.Name, entry.Quantity, product.UnitOrDefault(), product.Name))

	return entry, nil
}

func (s *auditService) RecordExpense(ctx context.Context, req *ExpenseRequest, actor Actor) (*model.AuditData, error) {
	if err := validateExpense(req); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, newValidationError(err.Error())
	}

	source := req.Source
	unit := req.Unit
	if unit == "" {
		unit = model.DefaultUnit
	}
	entry := &model.AuditData{
		Source:    &source,
		Date:      date,
		Kind:      model.KindExpense,
		Quantity:  req.Quantity,
		Unit:      &unit,
		UnitPrice: *req.UnitPrice,
		Total:     int64(req.Quantity) * *req.UnitPrice,
		Note:      req.Note,
	}
	entry.CreatedBy = actor.ID
	entry.UpdatedBy = actor.ID

	if err := s.auditRepo.Create(s.db.WithContext(ctx), entry); err != nil {
		err = storeErr("menyimpan data pengeluaran", err)
		s.logFailure("record expense", err)
		return nil, err
	}

	s.log.Info("expense recorded", zap.String("entry_id", entry.ID.String()), zap.Int64("total", entry.Total))
	s.publish("expense_recorded", entry, actor, fmt.Sprintf("%s mencatat pengeluaran '%s'", actor.Name, source))

	return entry, nil
}

func (s *auditService) DeleteEntry(ctx context.Context, id uuid.UUID, actor Actor) error {
	var deleted *model.AuditData

	err := s.run(ctx, func(tx *gorm.DB) error {
		entry, err := s.auditRepo.Lookup(tx, id)
		if err != nil {
			return lookupErr(err, errAuditNotFound, "mengambil data audit")
		}

		// Penjualan dihapus: stok dikembalikan dulu
		if sale, ok := entry.Ledger().(model.Sale); ok {
			if err := s.restock(tx, sale.ProductID, sale.Quantity, actor); err != nil {
				return err
			}
		}

		if err := s.auditRepo.Delete(tx, id); err != nil {
			return storeErr("menghapus data audit", err)
		}
		deleted = entry
		return nil
	})
	if err != nil {
		s.logFailure("delete entry", err)
		return err
	}

	s.log.Info("entry deleted", zap.String("entry_id", id.String()), zap.String("kind", string(deleted.Kind)))
	s.publish("entry_deleted", deleted, actor, fmt.Sprintf("%s menghapus data audit", actor.Name))

	return nil
}

func (s *auditService) UpdateEntry(ctx context.Context, id uuid.UUID, req *UpdateAuditRequest, actor Actor) (*model.AuditData, error) {
	err := s.run(ctx, func(tx *gorm.DB) error {
		existing, err := s.auditRepo.Lookup(tx, id)
		if err != nil {
			return lookupErr(err, errAuditNotFound, "mengambil data audit")
		}

		switch current := existing.Ledger().(type) {
		case model.Sale:
			return s.updateSale(tx, existing, current, req, actor)
		case model.Expense:
			return s.updateExpense(tx, existing, current, req, actor)
		default:
			return fmt.Errorf("unknown ledger variant %T", current)
		}
	})
	if err != nil {
		s.logFailure("update entry", err)
		return nil, err
	}

	updated, err := s.auditRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, errAuditNotFound, "mengambil data audit")
	}

	s.log.Info("entry updated", zap.String("entry_id", id.String()), zap.Int("quantity", updated.Quantity))
	s.publish("entry_updated", updated, actor, fmt.Sprintf("%s memperbarui data audit", actor.Name))

	return updated, nil
}

func (s *auditService) updateSale(tx *gorm.DB, existing *model.AuditData, current model.Sale, req *UpdateAuditRequest, actor Actor) error {
	in := SaleRequest{ProductID: req.ProductID, Date: req.Date, Quantity: req.Quantity, Note: req.Note}
	if msgs := validator.Messages(&in); len(msgs) > 0 {
		return newValidationError(msgs...)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return newValidationError(err.Error())
	}

	unitPrice := current.UnitPrice

	if in.ProductID != current.ProductID {
		newProduct, err := s.productRepo.Lookup(tx, in.ProductID)
		if err != nil {
			return lookupErr(err, errProductNotFound, "mengambil produk")
		}

		// Produk lama dikembalikan penuh, lalu produk baru dikurangi
		if err := s.restock(tx, current.ProductID, current.Quantity, actor); err != nil {
			return err
		}
		if err := s.withdraw(tx, newProduct.ID, in.Quantity, actor); err != nil {
			return err
		}
		unitPrice = newProduct.Price
	} else {
		delta := in.Quantity - current.Quantity
		switch {
		case delta > 0:
			if err := s.withdraw(tx, current.ProductID, delta, actor); err != nil {
				return err
			}
		case delta < 0:
			if err := s.restock(tx, current.ProductID, -delta, actor); err != nil {
				return err
			}
		}
	}

	productID := in.ProductID
	existing.ProductID = &productID
	existing.Date = date
	existing.Quantity = in.Quantity
	existing.UnitPrice = unitPrice
	existing.Total = int64(in.Quantity) * unitPrice
	existing.Note = in.Note
	existing.UpdatedBy = actor.ID

	if err := s.auditRepo.Save(tx, existing); err != nil {
		return storeErr("memperbarui data audit", err)
	}
	return nil
}

func (s *auditService) updateExpense(tx *gorm.DB, existing *model.AuditData, current model.Expense, req *UpdateAuditRequest, actor Actor) error {
	unit := current.Unit
	if req.Unit != nil && *req.Unit != "" {
		unit = *req.Unit
	}
	in := ExpenseRequest{
		Source:    req.Source,
		Date:      req.Date,
		Quantity:  req.Quantity,
		Unit:      unit,
		UnitPrice: req.UnitPrice,
		Note:      req.Note,
	}
	if err := validateExpense(&in); err != nil {
		return err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return newValidationError(err.Error())
	}

	existing.Source = &in.Source
	existing.Unit = &unit
	existing.Date = date
	existing.Quantity = in.Quantity
	existing.UnitPrice = *in.UnitPrice
	existing.Total = int64(in.Quantity) * *in.UnitPrice
	existing.Note = in.Note
	existing.UpdatedBy = actor.ID

	if err := s.auditRepo.Save(tx, existing); err != nil {
		return storeErr("memperbarui data audit", err)
	}
	return nil
}

func (s *auditService) GetEntry(ctx context.Context, id uuid.UUID) (*model.AuditData, error) {
	entry, err := s.auditRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, errAuditNotFound, "mengambil data audit")
	}
	return entry, nil
}

func (s *auditService) ListEntries(ctx context.Context, filter repository.AuditFilter) ([]model.AuditData, error) {
	entries, err := s.auditRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, storeErr("mengambil data audit", err)
	}
	return entries, nil
}

// withdraw takes qty out of the product's stock or reports how much is left.
func (s *auditService) withdraw(tx *gorm.DB, productID uuid.UUID, qty int, actor Actor) error {
	ok, err := s.productRepo.Withdraw(tx, productID, qty, actor.ID)
	if err != nil {
		return storeErr("mengurangi stok", err)
	}
	if ok {
		return nil
	}

	p, err := s.productRepo.Lookup(tx, productID)
	if err != nil {
		return lookupErr(err, errProductNotFound, "mengambil produk")
	}
	return &InsufficientStockError{Available: p.Stock}
}

// restock returns qty to the product. A product that no longer exists is
// skipped.
func (s *auditService) restock(tx *gorm.DB, productID uuid.UUID, qty int, actor Actor) error {
	rows, err := s.productRepo.Restock(tx, productID, qty, actor.ID)
	if err != nil {
		return storeErr("mengembalikan stok", err)
	}
	if rows == 0 {
		s.log.Warn("restock skipped, product missing", zap.String("product_id", productID.String()), zap.Int("quantity", qty))
	}
	return nil
}

func (s *auditService) publish(action string, entry *model.AuditData, actor Actor, message string) {
	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  action,
		Data:    entry.ToResponse(),
		User:    actor.Name,
		Message: message,
	})
}

func (s *auditService) logFailure(op string, err error) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		s.log.Error(op+" failed", zap.Error(err))
		return
	}
	s.log.Debug(op+" rejected", zap.Error(err))
}

func validateExpense(req *ExpenseRequest) error {
	msgs := validator.Messages(req)
	if req.UnitPrice == nil {
		msgs = append(msgs, "harga_satuan harus diisi")
	}
	if len(msgs) > 0 {
		return newValidationError(msgs...)
	}
	return nil
}

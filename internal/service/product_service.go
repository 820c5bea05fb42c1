package service

import (
	"context"
	"fmt"
	"strings"

	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/internal/ws"
	"umkm-kembar-barokah/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateProductRequest struct {
	Name           string  `json:"nama_produk" validate:"required"`
	Detail         string  `json:"detail_produk" validate:"required"`
	ProductionDate string  `json:"tanggal_produksi" validate:"required"`
	ProducedQty    int     `json:"jumlah_produksi" validate:"required,gt=0"`
	Price          int64   `json:"harga_satuan" validate:"gte=0"`
	Unit           string  `json:"unit"`
	Image          *string `json:"gambar"`
}

// UpdateProductRequest replaces the editable columns. Stock is a manual
// correction and is left alone when omitted.
type UpdateProductRequest struct {
	Name   string  `json:"nama_produk" validate:"required"`
	Detail string  `json:"detail_produk"`
	Price  *int64  `json:"harga_satuan" validate:"omitnil,gte=0"`
	Stock  *int    `json:"stok_tersedia" validate:"omitnil,gte=0"`
	Unit   string  `json:"unit"`
	Image  *string `json:"gambar"`
}

type ProductService interface {
	Create(ctx context.Context, req *CreateProductRequest, actor Actor) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
	Customers(ctx context.Context, id uuid.UUID) ([]model.Customer, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	wsHub        *ws.Hub
	log          *zap.Logger
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CustomerRepository, hub *ws.Hub, log *zap.Logger) ProductService {
	return &productService{
		productRepo:  pRepo,
		customerRepo: cRepo,
		wsHub:        hub,
		log:          log,
	}
}

func (s *productService) Create(ctx context.Context, req *CreateProductRequest, actor Actor) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}
	date, err := parseDate(req.ProductionDate)
	if err != nil {
		return nil, newValidationError(err.Error())
	}

	// Stok awal = jumlah produksi
	product := &model.Product{
		Name:           req.Name,
		Detail:         req.Detail,
		ProductionDate: date,
		ProducedQty:    req.ProducedQty,
		Stock:          req.ProducedQty,
		Price:          req.Price,
		Unit:           req.Unit,
		Image:          req.Image,
	}
	product.Unit = product.UnitOrDefault()
	product.CreatedBy = actor.ID
	product.UpdatedBy = actor.ID

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, storeErr("menambahkan produk", err)
	}

	s.log.Info("product created", zap.String("product_id", product.ID.String()), zap.Int("stock", product.Stock))
	s.publish("product_created", product, actor, fmt.Sprintf("%s menambahkan produk '%s'", actor.Name, product.Name))

	return product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, storeErr("mengambil data produk", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, errProductNotFound, "mengambil data produk")
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, errProductNotFound, "mengambil data produk")
	}

	oldStock := product.Stock

	product.Name = req.Name
	product.Detail = req.Detail
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	// Gambar hanya diganti jika dikirim
	if req.Image != nil {
		product.Image = req.Image
	}
	product.UpdatedBy = actor.ID

	if err := s.productRepo.Update(ctx, product, req.Stock != nil); err != nil {
		return nil, storeErr("memperbarui produk", err)
	}

	// Stok bisa berubah oleh penjualan di antara baca dan tulis
	product, err = s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, errProductNotFound, "mengambil data produk")
	}

	s.log.Info("product updated",
		zap.String("product_id", product.ID.String()),
		zap.Int("old_stock", oldStock),
		zap.Int("new_stock", product.Stock),
	)

	message := fmt.Sprintf("%s memperbarui produk '%s'", actor.Name, product.Name)
	if req.Stock != nil && oldStock != *req.Stock {
		message = fmt.Sprintf("%s mengoreksi stok '%s': %d -> %d", actor.Name, product.Name, oldStock, product.Stock)
	}
	s.publish("product_updated", product, actor, message)

	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	rows, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return storeErr("menghapus produk", err)
	}
	if rows == 0 {
		return errProductNotFound
	}

	s.log.Info("product deleted", zap.String("product_id", id.String()))
	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "product_deleted",
		Data:    idPayload(id),
		User:    actor.Name,
		Message: fmt.Sprintf("%s menghapus produk", actor.Name),
	})
	return nil
}

func (s *productService) Customers(ctx context.Context, id uuid.UUID) ([]model.Customer, error) {
	customers, err := s.customerRepo.FindByProduct(ctx, id)
	if err != nil {
		return nil, storeErr("mengambil data customers", err)
	}
	return customers, nil
}

func (s *productService) publish(action string, p *model.Product, actor Actor, message string) {
	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  action,
		Data:    p,
		User:    actor.Name,
		Message: message,
	})
}

func idPayload(id uuid.UUID) map[string]string {
	return map[string]string{"id": id.String()}
}

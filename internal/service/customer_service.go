package service

import (
	"context"
	"strings"

	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerRequest is used for create and update. produk_id is stored as given.
type CustomerRequest struct {
	Name      string    `json:"nama" validate:"required"`
	ProductID uuid.UUID `json:"produk_id" validate:"uuid_required"`
	Address   string    `json:"alamat" validate:"required"`
}

type CustomerService interface {
	List(ctx context.Context) ([]model.Customer, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Create(ctx context.Context, req *CustomerRequest, actor Actor) (*model.Customer, error)
	Update(ctx context.Context, id uuid.UUID, req *CustomerRequest, actor Actor) (*model.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
	log  *zap.Logger
}

func NewCustomerService(repo repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{repo: repo, log: log}
}

func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeErr("mengambil data customer", err)
	}
	return customers, nil
}

func (s *customerService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Customer, error) {
	customers, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, storeErr("mengambil data customer", err)
	}
	return customers, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, errCustomerNotFound, "mengambil data customer")
	}
	return customer, nil
}

func (s *customerService) Create(ctx context.Context, req *CustomerRequest, actor Actor) (*model.Customer, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	customer := &model.Customer{Name: req.Name, ProductID: req.ProductID, Address: req.Address}
	customer.CreatedBy = actor.ID
	customer.UpdatedBy = actor.ID

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, storeErr("menambahkan customer", err)
	}

	s.log.Info("customer created", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *CustomerRequest, actor Actor) (*model.Customer, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, errCustomerNotFound, "mengambil data customer")
	}

	customer.Name = req.Name
	customer.ProductID = req.ProductID
	customer.Address = req.Address
	customer.UpdatedBy = actor.ID

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, storeErr("memperbarui customer", err)
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storeErr("menghapus customer", err)
	}
	if rows == 0 {
		return errCustomerNotFound
	}
	s.log.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func validateCustomer(req *CustomerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return newValidationError(msgs...)
	}
	return nil
}

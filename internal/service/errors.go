package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is wrapped by every *NotFoundError.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrUsernameTaken      = errors.New("username sudah digunakan")
	ErrWrongPassword      = errors.New("password lama salah")
)

// ValidationError lists every missing or malformed field of a request.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "Data tidak valid: " + strings.Join(e.Errors, "; ")
}

func newValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Errors: msgs}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " tidak ditemukan"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

var (
	errProductNotFound  = &NotFoundError{Resource: "Produk"}
	errAuditNotFound    = &NotFoundError{Resource: "Data audit"}
	errCustomerNotFound = &NotFoundError{Resource: "Customer"}
	errUserNotFound     = &NotFoundError{Resource: "User"}
)

// InsufficientStockError carries the stock that was available when the
// request was rejected.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stok tidak mencukupi. Stok tersedia: %d", e.Available)
}

// StoreError wraps any other failure of the underlying database.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("gagal %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// lookupErr maps gorm's missing-record error to notFound and anything else to
// a StoreError.
func lookupErr(err error, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storeErr(op, err)
}

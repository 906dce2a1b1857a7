// Package shared holds the pieces every application service needs: the
// transaction scope, list queries and the soft-delete lifecycle runner.
package shared

import (
	"context"

	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/invoicing"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/partner"
)

// TransactionScope runs a unit of work in one database transaction.
// If fn returns an error the transaction is rolled back, otherwise committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to repositories bound to the current transaction
type Repositories interface {
	Branches() organization.BranchRepository
	Warehouses() organization.WarehouseRepository
	Sellers() organization.SellerRepository
	Customers() partner.CustomerRepository
	Products() catalog.ProductRepository
	Stock() inventory.StockRepository
	Transfers() inventory.TransferRepository
	Invoices() invoicing.InvoiceRepository
}

// NoOpTransactionScope hands out fixed repositories without a transaction.
// Service tests use it with mocks.
type NoOpTransactionScope struct {
	BranchRepo    organization.BranchRepository
	WarehouseRepo organization.WarehouseRepository
	SellerRepo    organization.SellerRepository
	CustomerRepo  partner.CustomerRepository
	ProductRepo   catalog.ProductRepository
	StockRepo     inventory.StockRepository
	TransferRepo  inventory.TransferRepository
	InvoiceRepo   invoicing.InvoiceRepository
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Branches() organization.BranchRepository     { return s.BranchRepo }
func (s *NoOpTransactionScope) Warehouses() organization.WarehouseRepository { return s.WarehouseRepo }
func (s *NoOpTransactionScope) Sellers() organization.SellerRepository       { return s.SellerRepo }
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository        { return s.CustomerRepo }
func (s *NoOpTransactionScope) Products() catalog.ProductRepository          { return s.ProductRepo }
func (s *NoOpTransactionScope) Stock() inventory.StockRepository             { return s.StockRepo }
func (s *NoOpTransactionScope) Transfers() inventory.TransferRepository      { return s.TransferRepo }
func (s *NoOpTransactionScope) Invoices() invoicing.InvoiceRepository        { return s.InvoiceRepo }

var (
	_ TransactionScope = (*NoOpTransactionScope)(nil)
	_ Repositories     = (*NoOpTransactionScope)(nil)
)

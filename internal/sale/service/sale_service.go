package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/database"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	productDomain "github.com/Adal612Git/miNegocioApp-backend/internal/product/domain"
	productRepo "github.com/Adal612Git/miNegocioApp-backend/internal/product/repository"
	"github.com/Adal612Git/miNegocioApp-backend/internal/sale/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/sale/repository"
)

var (
	// ErrProductNotFound: a requested id does not resolve to an active
	// product of this business. Distinct from ErrOutOfStock so the caller
	// can tell "doesn't exist / not yours" from "exists but unavailable".
	ErrProductNotFound     = errors.New("product not found")
	ErrOutOfStock          = errors.New("out of stock")
	ErrInsufficientPayment = errors.New("insufficient payment")
)

// ProductStore is the slice of the product repository the checkout needs.
type ProductStore interface {
	FindActiveByIDs(ctx context.Context, businessID string, productIDs []string) ([]productDomain.Product, error)
	DecrementStock(ctx context.Context, businessID, productID string, quantity int) error
	IncrementStock(ctx context.Context, businessID, productID string, quantity int) error
}

type SaleService interface {
	CreateSale(ctx context.Context, businessID string, req domain.CreateSaleRequest) (*domain.Sale, error)
}

type saleServiceImpl struct {
	saleRepo repository.SaleRepository
	products ProductStore
	tx       database.TxRunner
}

func NewSaleService(saleRepo repository.SaleRepository, products ProductStore, tx database.TxRunner) SaleService {
	return &saleServiceImpl{
		saleRepo: saleRepo,
		products: products,
		tx:       tx,
	}
}

// CreateSale resolves products, decrements stock per item with conditional
// updates, checks payment and persists the sale record. On a replica set the
// whole sequence runs inside one multi-document transaction; a conflicting
// concurrent decrement aborts one of the transactions cleanly. On a
// standalone deployment the same sequence runs unwrapped and failures after
// the first decrement trigger best-effort stock restoration.
func (s *saleServiceImpl) CreateSale(ctx context.Context, businessID string, req domain.CreateSaleRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: sale must contain at least one item", ErrProductNotFound)
	}

	var sale *domain.Sale
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.runSale(txCtx, businessID, req)
		if err != nil {
			return err
		}
		sale = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *saleServiceImpl) runSale(ctx context.Context, businessID string, req domain.CreateSaleRequest) (*domain.Sale, error) {
	// 1. Resolve every referenced product in one tenant-scoped lookup.
	distinct := make([]string, 0, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			distinct = append(distinct, item.ProductID)
		}
	}

	products, err := s.products.FindActiveByIDs(ctx, businessID, distinct)
	if err != nil {
		return nil, fmt.Errorf("resolving products: %w", err)
	}
	if len(products) != len(distinct) {
		// nothing has been decremented yet, the whole operation aborts here
		return nil, ErrProductNotFound
	}

	productByID := make(map[string]productDomain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	// 2. Freeze the current price into the line items.
	items := make([]domain.SaleItem, len(req.Items))
	for i, itemReq := range req.Items {
		product, ok := productByID[itemReq.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		items[i] = domain.SaleItem{
			ProductID: product.ID,
			Quantity:  itemReq.Quantity,
			Price:     product.Price,
		}
	}

	// 3. Per-item conditional decrement. Each update carries its own
	// precondition (stock >= quantity, active, same business) and reports
	// whether it matched; there is no read-then-blind-write window.
	decremented := make([]domain.SaleItem, 0, len(items))
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, businessID, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, productRepo.ErrInsufficientStock) {
				return nil, s.failSale(businessID, decremented, fmt.Errorf("%w: product_id %s", ErrOutOfStock, item.ProductID))
			}
			return nil, s.failSale(businessID, decremented, fmt.Errorf("decrementing stock for product %s: %w", item.ProductID, err))
		}
		decremented = append(decremented, item)
	}

	// 4. Total with exact decimal arithmetic.
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// 5. Payment check. Stock is already decremented at this point; the
	// surrounding transaction (or the compensation below) undoes it.
	if req.AmountPaid.LessThan(total) {
		return nil, s.failSale(businessID, decremented, ErrInsufficientPayment)
	}

	// 6. Persist the sale record.
	sale := &domain.Sale{
		BusinessID: businessID,
		Date:       time.Now().UTC(),
		Items:      items,
		Total:      total,
	}
	if err := s.saleRepo.InsertSale(ctx, sale); err != nil {
		return nil, s.failSale(businessID, decremented, fmt.Errorf("persisting sale: %w", err))
	}

	return sale, nil
}

// failSale returns cause unchanged. On the transactional path the aborting
// transaction restores stock by itself. Without transactions the decrements
// already applied are restored one by one; a failed restore is logged loudly
// because it leaves stock lost with no sale recorded.
func (s *saleServiceImpl) failSale(businessID string, decremented []domain.SaleItem, cause error) error {
	if s.tx.Transactional() || len(decremented) == 0 {
		return cause
	}

	for _, item := range decremented {
		// fresh context: the request context may already be done
		if err := s.products.IncrementStock(context.Background(), businessID, item.ProductID, item.Quantity); err != nil {
			logger.Error(fmt.Sprintf("CRITICAL: failed to restore stock for product %s (quantity %d) after aborted sale", item.ProductID, item.Quantity), err)
		}
	}
	return cause
}

// CalculateChange is a pure function: no lookups, no persistence.
func CalculateChange(total, amountPaid decimal.Decimal) (decimal.Decimal, error) {
	if amountPaid.LessThan(total) {
		return decimal.Zero, ErrInsufficientPayment
	}
	return amountPaid.Sub(total), nil
}

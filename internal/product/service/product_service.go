package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/product/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/product/repository"
)

var (
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidPrice    = errors.New("price must be non-negative")
)

type ProductService interface {
	ListProducts(ctx context.Context, businessID string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, businessID string, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, businessID, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	UpdateStock(ctx context.Context, businessID, productID string, stock int) (*domain.Product, error)
	RemoveProduct(ctx context.Context, businessID, productID string) (*domain.Product, error)
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, businessID string) ([]domain.Product, error) {
	return s.repo.ListActiveProducts(ctx, businessID)
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, businessID string, req domain.CreateProductRequest) (*domain.Product, error) {
	if !domain.IsAllowedCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	product := &domain.Product{
		BusinessID: businessID,
		Name:       strings.TrimSpace(req.Name),
		Price:      req.Price,
		Stock:      req.Stock,
		Category:   req.Category,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, businessID, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	if req.Category != nil && !domain.IsAllowedCategory(*req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	return s.repo.UpdateProduct(ctx, businessID, productID, req)
}

func (s *productServiceImpl) UpdateStock(ctx context.Context, businessID, productID string, stock int) (*domain.Product, error) {
	return s.repo.SetStock(ctx, businessID, productID, stock)
}

func (s *productServiceImpl) RemoveProduct(ctx context.Context, businessID, productID string) (*domain.Product, error) {
	// logical delete only; sales keep referencing the product id
	return s.repo.DeactivateProduct(ctx, businessID, productID)
}

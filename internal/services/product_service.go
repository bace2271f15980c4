package services

import (
	"context"

	"qual-store/internal/logger"
	"qual-store/internal/models"
	"qual-store/internal/repository"
	"qual-store/internal/validation"
)

type ProductService struct {
	products  repository.ProductRepo
	validator validation.Validator
	log       *logger.Logger
}

func NewProductService(log *logger.Logger, products repository.ProductRepo, validator validation.Validator) *ProductService {
	return &ProductService{
		products:  products,
		validator: validator,
		log:       log.With("service", "ProductService"),
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = 0
	if err := s.validator.Validate(product); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, nil, product); err != nil {
		return nil, err
	}
	s.log.Info("Product created", "product_id", product.ID, "price", product.Price)
	return product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.products.FindByID(ctx, nil, id)
}

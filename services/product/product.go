package productService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/models"
	categoryService "ecommerce/services/category"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductInput is the seller-writable part of a product. Rating is never part of it.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Stock       int
	CategoryID  uint
	Attributes  map[string]interface{}
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("productService")}
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Scopes(models.Active).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListByCategory returns the active products of an active category.
func (s *Service) ListByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	db := s.db.WithContext(ctx)
	if _, err := categoryService.FindActive(db, categoryID); err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := db.Scopes(models.Active).
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products for category %d: %w", categoryID, err)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	return FindActive(s.db.WithContext(ctx), id)
}

func (s *Service) Create(ctx context.Context, seller *models.User, input ProductInput) (*models.Product, error) {
	db := s.db.WithContext(ctx)
	if _, err := categoryService.FindActive(db, input.CategoryID); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		Attributes:  datatypes.JSONMap(input.Attributes),
		CategoryID:  input.CategoryID,
		SellerID:    seller.ID,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created", zap.Uint("product_id", product.ID), zap.Uint("seller_id", seller.ID))
	return &product, nil
}

func (s *Service) Update(ctx context.Context, seller *models.User, id uint, input ProductInput) (*models.Product, error) {
	var product *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = findOwned(tx, seller, id)
		if err != nil {
			return err
		}
		if _, err := categoryService.FindActive(tx, input.CategoryID); err != nil {
			return err
		}

		// A map keeps zero values such as stock 0; rating is left alone.
		err = tx.Model(product).Updates(map[string]interface{}{
			"name":        input.Name,
			"description": input.Description,
			"price":       input.Price,
			"image_url":   input.ImageURL,
			"stock":       input.Stock,
			"category_id": input.CategoryID,
			"attributes":  datatypes.JSONMap(input.Attributes),
		}).Error
		if err != nil {
			return fmt.Errorf("update product %d: %w", id, err)
		}
		return tx.First(product, id).Error
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes a product owned by seller.
func (s *Service) Delete(ctx context.Context, seller *models.User, id uint) error {
	db := s.db.WithContext(ctx)
	product, err := findOwned(db, seller, id)
	if err != nil {
		return err
	}
	if err := db.Model(product).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivate product %d: %w", id, err)
	}
	s.log.Info("Product deleted", zap.Uint("product_id", id), zap.Uint("seller_id", seller.ID))
	return nil
}

// FindActive loads an active product or reports it as not found.
func FindActive(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.Scopes(models.Active).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	return &product, nil
}

func findOwned(db *gorm.DB, seller *models.User, id uint) (*models.Product, error) {
	product, err := FindActive(db, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != seller.ID {
		return nil, apperror.Forbidden("You can only modify your own products")
	}
	return product, nil
}

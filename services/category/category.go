package categoryService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/models"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name     string
	ParentID *uint
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("categoryService")}
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Scopes(models.Active).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Service) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	db := s.db.WithContext(ctx)
	if err := checkParent(db, 0, input.ParentID); err != nil {
		return nil, err
	}

	category := models.Category{Name: input.Name, ParentID: input.ParentID, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.log.Info("Category created", zap.Uint("category_id", category.ID))
	return &category, nil
}

func (s *Service) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	db := s.db.WithContext(ctx)
	category, err := FindActive(db, id)
	if err != nil {
		return nil, err
	}
	if err := checkParent(db, id, input.ParentID); err != nil {
		return nil, err
	}

	err = db.Model(category).Updates(map[string]interface{}{
		"name":      input.Name,
		"parent_id": input.ParentID,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	category.Name = input.Name
	category.ParentID = input.ParentID
	return category, nil
}

// Delete soft-deletes a category. Its products stay as they are.
func (s *Service) Delete(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	category, err := FindActive(db, id)
	if err != nil {
		return err
	}
	if err := db.Model(category).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivate category %d: %w", id, err)
	}
	s.log.Info("Category deleted", zap.Uint("category_id", id))
	return nil
}

// FindActive loads an active category or reports it as not found.
func FindActive(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.Scopes(models.Active).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Category not found")
		}
		return nil, fmt.Errorf("load category %d: %w", id, err)
	}
	return &category, nil
}

func checkParent(db *gorm.DB, id uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return apperror.InvalidInput("category cannot be its own parent")
	}
	if _, err := FindActive(db, *parentID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Parent category not found")
		}
		return err
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// CategoryUseCase CRUD for product categories.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	images     ports.ImageStore
	log        *logger.Logger
}

// NewCategoryUseCase builds the use case.
func NewCategoryUseCase(categories repository.CategoryRepository, images ports.ImageStore, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, images: images, log: log}
}

// Create stores a category and its optional image.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryInput) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if in.Image != nil {
		url, err := uc.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		c.Image = url
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		discardImage(ctx, uc.images, uc.log, c.Image)
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update renames the category and optionally replaces its image.
func (uc *CategoryUseCase) Update(ctx context.Context, in dto.CategoryInput) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		c.Name = v
	}
	oldImage, newImage := "", ""
	if in.Image != nil {
		if newImage, err = uc.saveImage(ctx, in.Image); err != nil {
			return nil, err
		}
		oldImage, c.Image = c.Image, newImage
	}
	c.UpdatedAt = time.Now()
	if err := uc.categories.Update(ctx, c); err != nil {
		discardImage(ctx, uc.images, uc.log, newImage)
		return nil, err
	}
	discardImage(ctx, uc.images, uc.log, oldImage)
	return toCategoryResponse(c), nil
}

// List returns every category.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// GetByID returns one category.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete removes a category no product uses.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.categories.Delete(ctx, id); err != nil {
		return err
	}
	discardImage(ctx, uc.images, uc.log, c.Image)
	return nil
}

func (uc *CategoryUseCase) get(ctx context.Context, id string) (*entity.Category, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CategoryUseCase) saveImage(ctx context.Context, f *dto.FileUpload) (string, error) {
	if len(f.Data) > MaxIconBytes {
		return "", fmt.Errorf("%w: image must be at most 2MB", domain.ErrInvalidInput)
	}
	return uc.images.Save(ctx, "categories", *f)
}

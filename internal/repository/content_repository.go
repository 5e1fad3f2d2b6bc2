package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_gateway/internal/models"
)

// ErrNotFound is returned when no saved content has the requested ID
var ErrNotFound = errors.New("content not found")

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ContentFilter narrows a content listing
type ContentFilter struct {
	Kind   string
	Limit  int
	Offset int
}

// ContentRepository stores generated copy
type ContentRepository interface {
	Save(ctx context.Context, content *models.SavedContent) error
	Get(ctx context.Context, id uuid.UUID) (*models.SavedContent, error)
	List(ctx context.Context, filter ContentFilter) ([]models.SavedContent, int64, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type contentRepository struct {
	*BaseRepository
}

// NewContentRepository creates a GORM-backed content repository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *contentRepository) Save(ctx context.Context, content *models.SavedContent) error {
	return r.Create(ctx, content)
}

func (r *contentRepository) Get(ctx context.Context, id uuid.UUID) (*models.SavedContent, error) {
	var content models.SavedContent
	if err := r.FindByID(ctx, id, &content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) List(ctx context.Context, filter ContentFilter) ([]models.SavedContent, int64, error) {
	filter = normalizeFilter(filter)

	scoped := func() *gorm.DB {
		query := r.DB.WithContext(ctx).Model(&models.SavedContent{})
		if filter.Kind != "" {
			query = query.Where("kind = ?", filter.Kind)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contents []models.SavedContent
	err := scoped().Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&contents).Error

	return contents, total, err
}

func (r *contentRepository) Remove(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&models.SavedContent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeFilter(filter ContentFilter) ContentFilter {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

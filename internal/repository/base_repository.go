package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines common repository operations
type Repository interface {
	Create(ctx context.Context, entity interface{}) error
	FindByID(ctx context.Context, id interface{}, entity interface{}) error
	Delete(ctx context.Context, entity interface{}) error
}

// BaseRepository implements basic repository operations
type BaseRepository struct {
	DB *gorm.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *gorm.DB) *BaseRepository {
	return &BaseRepository{DB: db}
}

// Create creates a new entity
func (r *BaseRepository) Create(ctx context.Context, entity interface{}) error {
	return r.DB.WithContext(ctx).Create(entity).Error
}

// FindByID finds an entity by primary key
func (r *BaseRepository) FindByID(ctx context.Context, id interface{}, entity interface{}) error {
	return r.DB.WithContext(ctx).First(entity, "id = ?", id).Error
}

// Delete soft-deletes an entity
func (r *BaseRepository) Delete(ctx context.Context, entity interface{}) error {
	return r.DB.WithContext(ctx).Delete(entity).Error
}

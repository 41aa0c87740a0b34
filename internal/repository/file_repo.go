package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type FileRepository interface {
	// FindByID loads the full row, content included.
	FindByID(ctx context.Context, id int64) (*model.File, error)
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) FindByID(ctx context.Context, id int64) (*model.File, error) {
	var file model.File
	if err := GetDB(ctx, r.db).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

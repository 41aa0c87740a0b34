package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

type FileService interface {
	// GetFile returns the attachment with its content loaded.
	GetFile(ctx context.Context, id int64) (*model.File, error)
}

type fileService struct {
	files repository.FileRepository
}

func NewFileService(files repository.FileRepository) FileService {
	return &fileService{files: files}
}

func (s *fileService) GetFile(ctx context.Context, id int64) (*model.File, error) {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: file doesn't exist", ErrNotFound)
		}
		return nil, err
	}
	return file, nil
}

// ContentTypeFor maps a stored filename's extension onto the download
// content type. Unknown extensions fall back to a generic binary type.
func ContentTypeFor(storedFilename string) string {
	switch strings.ToLower(filepath.Ext(storedFilename)) {
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".pdf":
		return "application/pdf"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

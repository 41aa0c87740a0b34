package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// fileListColumns are the attachment columns loaded alongside requests.
// Content is deliberately absent: blobs are fetched one at a time on download.
var fileListColumns = []string{
	"id", "original_filename", "stored_filename", "file_size",
	"user_email", "company_id", "request_id", "is_compressed",
	"uploaded_at", "href",
}

type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	Save(ctx context.Context, request *model.Request) error
	FindByID(ctx context.Context, id int64) (*model.Request, error)
	FindAllByIDs(ctx context.Context, ids []int64) ([]model.Request, error)
	FindByCompanyID(ctx context.Context, companyID int64) ([]model.Request, error)
	FindByProjectAndCompany(ctx context.Context, projectID, companyID int64) ([]model.Request, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *model.Request) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *requestRepository) Save(ctx context.Context, request *model.Request) error {
	return GetDB(ctx, r.db).Save(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id int64) (*model.Request, error) {
	var request model.Request
	if err := GetDB(ctx, r.db).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindAllByIDs(ctx context.Context, ids []int64) ([]model.Request, error) {
	var requests []model.Request
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) FindByCompanyID(ctx context.Context, companyID int64) ([]model.Request, error) {
	var requests []model.Request
	if err := r.listQuery(ctx).
		Where("company_id = ?", companyID).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) FindByProjectAndCompany(ctx context.Context, projectID, companyID int64) ([]model.Request, error) {
	var requests []model.Request
	if err := r.listQuery(ctx).
		Where("project_id = ? AND company_id = ?", projectID, companyID).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// DeleteByIDs removes the requests and their attachments. Callers run it
// inside TransactionManager.RunInTx so the batch is all-or-nothing.
func (r *requestRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("request_id IN ?", ids).Delete(&model.File{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", ids).Delete(&model.Request{}).Error
}

func (r *requestRepository) listQuery(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Select(fileListColumns)
		}).
		Order("created_at DESC")
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"pulseadmin/internal/model"
)

// FileRepository defines uploaded-file persistence operations.
type FileRepository interface {
	Create(ctx context.Context, f *model.UploadedFile) error
	Update(ctx context.Context, f *model.UploadedFile) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.UploadedFile, error)
	List(ctx context.Context) ([]*model.UploadedFile, error)
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository builds a GORM-backed repository.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, f *model.UploadedFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepository) Update(ctx context.Context, f *model.UploadedFile) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fileRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.UploadedFile{}, id).Error
}

func (r *fileRepository) FindByID(ctx context.Context, id uint) (*model.UploadedFile, error) {
	var f model.UploadedFile
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepository) List(ctx context.Context) ([]*model.UploadedFile, error) {
	var fs []*model.UploadedFile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&fs).Error; err != nil {
		return nil, err
	}
	return fs, nil
}

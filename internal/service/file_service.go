package service

import (
	"context"
	"fmt"

	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/metrics"
	"pulseadmin/internal/model"
	"pulseadmin/internal/rbac"
	"pulseadmin/internal/repository"
)

// FileInput carries the metadata recorded for an upload.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	StoragePath string
}

// FileService exposes tenant- and owner-scoped file metadata operations.
type FileService interface {
	List(ctx context.Context, p *rbac.Principal) ([]*model.UploadedFile, error)
	Get(ctx context.Context, p *rbac.Principal, id uint) (*model.UploadedFile, error)
	Create(ctx context.Context, p *rbac.Principal, in FileInput) (*model.UploadedFile, error)
	Delete(ctx context.Context, p *rbac.Principal, id uint) error
}

type fileService struct {
	repo    repository.FileRepository
	metrics *metrics.Metrics
}

// NewFileService builds a FileService.
func NewFileService(repo repository.FileRepository, m *metrics.Metrics) FileService {
	return &fileService{repo: repo, metrics: m}
}

func (s *fileService) List(ctx context.Context, p *rbac.Principal) ([]*model.UploadedFile, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return rbac.VisibleTo(p, all), nil
}

func (s *fileService) Get(ctx context.Context, p *rbac.Principal, id uint) (*model.UploadedFile, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanObserve(p, f.OwningOrganization()) {
		return nil, apperrors.ErrTenantMismatch
	}
	return f, nil
}

func (s *fileService) Create(ctx context.Context, p *rbac.Principal, in FileInput) (*model.UploadedFile, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}

	f := &model.UploadedFile{
		Name:           in.Name,
		ContentType:    in.ContentType,
		Size:           in.Size,
		StoragePath:    in.StoragePath,
		OwnerID:        p.UserID,
		OrganizationID: p.OrganizationID,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return f, nil
}

func (s *fileService) Delete(ctx context.Context, p *rbac.Principal, id uint) error {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return apperrors.ErrPermissionDenied
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !rbac.CanMutate(p, f.OwningOrganization()) {
		return apperrors.ErrTenantMismatch
	}
	if !rbac.IsOwnerOrAdminOrAbove(p, f.OwnerID) {
		s.metrics.RecordDenial("ownership")
		return apperrors.ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

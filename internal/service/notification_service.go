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

// NotificationService exposes tenant- and owner-scoped notifications.
type NotificationService interface {
	List(ctx context.Context, p *rbac.Principal) ([]*model.Notification, error)
	Get(ctx context.Context, p *rbac.Principal, id uint) (*model.Notification, error)
	Create(ctx context.Context, p *rbac.Principal, ownerID uint, message string) (*model.Notification, error)
	MarkRead(ctx context.Context, p *rbac.Principal, id uint) (*model.Notification, error)
	Delete(ctx context.Context, p *rbac.Principal, id uint) error
}

type notificationService struct {
	repo    repository.NotificationRepository
	metrics *metrics.Metrics
}

// NewNotificationService builds a NotificationService.
func NewNotificationService(repo repository.NotificationRepository, m *metrics.Metrics) NotificationService {
	return &notificationService{repo: repo, metrics: m}
}

func (s *notificationService) List(ctx context.Context, p *rbac.Principal) ([]*model.Notification, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := rbac.VisibleTo(p, all)

	// Plain users only see their own notifications; admins see the tenant's.
	if rbac.IsAdminOrAbove(p) || rbac.IsSuperAdmin(p) {
		return visible, nil
	}
	own := make([]*model.Notification, 0, len(visible))
	for _, n := range visible {
		if n.OwnerID == p.UserID {
			own = append(own, n)
		}
	}
	return own, nil
}

func (s *notificationService) Get(ctx context.Context, p *rbac.Principal, id uint) (*model.Notification, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanObserve(p, n.OwningOrganization()) {
		return nil, apperrors.ErrTenantMismatch
	}
	if !rbac.IsOwnerOrAdminOrAbove(p, n.OwnerID) {
		s.metrics.RecordDenial("ownership")
		return nil, apperrors.ErrPermissionDenied
	}
	return n, nil
}

// Create addresses a notification to ownerID. Only admins-or-above may
// notify other users; anyone may notify themselves.
func (s *notificationService) Create(ctx context.Context, p *rbac.Principal, ownerID uint, message string) (*model.Notification, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}
	if ownerID != p.UserID && !rbac.IsAdminOrAbove(p) {
		s.metrics.RecordDenial("ownership")
		return nil, apperrors.ErrPermissionDenied
	}

	n := &model.Notification{
		Message:        message,
		OwnerID:        ownerID,
		OrganizationID: p.OrganizationID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, p *rbac.Principal, id uint) (*model.Notification, error) {
	n, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, p *rbac.Principal, id uint) error {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return apperrors.ErrPermissionDenied
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !rbac.CanMutate(p, n.OwningOrganization()) {
		return apperrors.ErrTenantMismatch
	}
	if !rbac.IsOwnerOrAdminOrAbove(p, n.OwnerID) {
		s.metrics.RecordDenial("ownership")
		return apperrors.ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

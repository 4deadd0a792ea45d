package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulseadmin/internal/cache"
	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/metrics"
	"pulseadmin/internal/model"
	"pulseadmin/internal/rbac"
	"pulseadmin/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// TaskInput carries the mutable task fields.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// TaskService exposes tenant- and owner-scoped task operations.
type TaskService interface {
	List(ctx context.Context, p *rbac.Principal) ([]*model.Task, error)
	Get(ctx context.Context, p *rbac.Principal, id uint) (*model.Task, error)
	Create(ctx context.Context, p *rbac.Principal, in TaskInput) (*model.Task, error)
	Update(ctx context.Context, p *rbac.Principal, id uint, in TaskInput) (*model.Task, error)
	Delete(ctx context.Context, p *rbac.Principal, id uint) error
}

type taskService struct {
	repo    repository.TaskRepository
	cache   *cache.Client
	metrics *metrics.Metrics
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client, m *metrics.Metrics) TaskService {
	return &taskService{repo: repo, cache: cache, metrics: m}
}

func (s *taskService) cacheKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

// List returns the tasks visible to the principal's tenant.
func (s *taskService) List(ctx context.Context, p *rbac.Principal) ([]*model.Task, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return rbac.VisibleTo(p, tasks), nil
}

func (s *taskService) Get(ctx context.Context, p *rbac.Principal, id uint) (*model.Task, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			if !rbac.CanObserve(p, cached.OwningOrganization()) {
				return nil, apperrors.ErrTenantMismatch
			}
			return &cached, nil
		}
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanObserve(p, task.OwningOrganization()) {
		return nil, apperrors.ErrTenantMismatch
	}

	if payload, err := json.Marshal(task); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, taskCacheTTL)
	}
	return task, nil
}

// Create stores a task owned by the caller inside the caller's tenant.
func (s *taskService) Create(ctx context.Context, p *rbac.Principal, in TaskInput) (*model.Task, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}

	status := in.Status
	if status == "" {
		status = model.TaskPending
	}
	priority := in.Priority
	if priority == "" {
		priority = "medium"
	}

	task := &model.Task{
		Title:          in.Title,
		Description:    in.Description,
		Status:         status,
		Priority:       priority,
		DueDate:        in.DueDate,
		OwnerID:        p.UserID,
		OrganizationID: p.OrganizationID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, p *rbac.Principal, id uint, in TaskInput) (*model.Task, error) {
	task, err := s.guardMutation(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Status != "" {
		task.Status = in.Status
	}
	if in.Priority != "" {
		task.Priority = in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, p *rbac.Principal, id uint) error {
	if _, err := s.guardMutation(ctx, p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// guardMutation loads the task and applies the write-side checks: tenant
// mismatch surfaces as not-found, ownership as permission denied.
func (s *taskService) guardMutation(ctx context.Context, p *rbac.Principal, id uint) (*model.Task, error) {
	if !rbac.IsUser(p) {
		s.metrics.RecordDenial("inactive")
		return nil, apperrors.ErrPermissionDenied
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanMutate(p, task.OwningOrganization()) {
		return nil, apperrors.ErrTenantMismatch
	}
	if !rbac.IsOwnerOrAdminOrAbove(p, task.OwnerID) {
		s.metrics.RecordDenial("ownership")
		return nil, apperrors.ErrPermissionDenied
	}
	return task, nil
}

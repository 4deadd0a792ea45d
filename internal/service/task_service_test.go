package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/model"
	"pulseadmin/internal/rbac"
)

func userPrincipal(id uint, orgID *uint) *rbac.Principal {
	return &rbac.Principal{UserID: id, Username: "user", IsActive: true, Role: rbac.RoleUser, OrganizationID: orgID}
}

func TestListTasksFiltersByTenant(t *testing.T) {
	orgA := uintPtr(1)
	orgB := uintPtr(2)
	all := []*model.Task{
		{ID: 1, Title: "a", OwnerID: 10, OrganizationID: orgA},
		{ID: 2, Title: "b", OwnerID: 20, OrganizationID: orgB},
		{ID: 3, Title: "c", OwnerID: 11, OrganizationID: orgA},
	}

	repo := new(MockTaskRepository)
	repo.On("List", mock.Anything).Return(all, nil)

	svc := NewTaskService(repo, nil, nil)

	visible, err := svc.List(context.Background(), userPrincipal(10, orgA))
	assert.NoError(t, err)
	assert.Len(t, visible, 2)

	everything, err := svc.List(context.Background(), superadminPrincipal())
	assert.NoError(t, err)
	assert.Len(t, everything, 3)
}

func TestGetTaskCrossTenantLooksLikeNotFound(t *testing.T) {
	orgA := uintPtr(1)
	orgB := uintPtr(2)

	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, uint(2)).Return(&model.Task{ID: 2, OwnerID: 20, OrganizationID: orgB}, nil)

	svc := NewTaskService(repo, nil, nil)

	_, err := svc.Get(context.Background(), userPrincipal(10, orgA), 2)
	assert.ErrorIs(t, err, apperrors.ErrTenantMismatch)
	assert.Equal(t, 404, apperrors.MapErrorToHTTP(err).StatusCode)
}

func TestUpdateTaskRequiresOwnershipOrAdmin(t *testing.T) {
	orgA := uintPtr(1)
	task := &model.Task{ID: 1, Title: "a", OwnerID: 10, OrganizationID: orgA}

	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(task, nil)

	svc := NewTaskService(repo, nil, nil)

	// A non-owner plain user in the same tenant is denied.
	_, err := svc.Update(context.Background(), userPrincipal(11, orgA), 1, TaskInput{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The owner may update.
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	updated, err := svc.Update(context.Background(), userPrincipal(10, orgA), 1, TaskInput{Title: "renamed"})
	assert.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	// An admin of the same tenant may update someone else's task.
	_, err = svc.Update(context.Background(), adminPrincipal(orgA), 1, TaskInput{Status: model.TaskCompleted})
	assert.NoError(t, err)
}

func TestDeleteTaskCrossTenantLooksLikeNotFound(t *testing.T) {
	orgA := uintPtr(1)
	orgB := uintPtr(2)

	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, uint(2)).Return(&model.Task{ID: 2, OwnerID: 20, OrganizationID: orgB}, nil)

	svc := NewTaskService(repo, nil, nil)

	// Even an admin from another tenant sees not-found, not forbidden.
	err := svc.Delete(context.Background(), adminPrincipal(orgA), 2)
	assert.ErrorIs(t, err, apperrors.ErrTenantMismatch)
}

func TestCreateTaskBindsOwnerAndTenant(t *testing.T) {
	orgA := uintPtr(1)

	repo := new(MockTaskRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.OwnerID == 10 && task.OrganizationID == orgA && task.Status == model.TaskPending
	})).Return(nil)

	svc := NewTaskService(repo, nil, nil)

	task, err := svc.Create(context.Background(), userPrincipal(10, orgA), TaskInput{Title: "new"})
	assert.NoError(t, err)
	assert.Equal(t, uint(10), task.OwnerID)
	repo.AssertExpectations(t)
}

func TestInactivePrincipalDeniedEverywhere(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := NewTaskService(repo, nil, nil)

	p := userPrincipal(10, uintPtr(1))
	p.IsActive = false

	_, err := svc.List(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Create(context.Background(), p, TaskInput{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

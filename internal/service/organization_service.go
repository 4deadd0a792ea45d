package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/metrics"
	"pulseadmin/internal/model"
	"pulseadmin/internal/rbac"
	"pulseadmin/internal/repository"
)

// TenantStats summarizes the tenant population for the superadmin dashboard.
type TenantStats struct {
	TotalTenants  int64 `json:"total_tenants"`
	ActiveTenants int64 `json:"active_tenants"`
	TrialTenants  int64 `json:"trial_tenants"`
}

// TenantAdmin is a compact view of an organization administrator.
type TenantAdmin struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// TenantSummary is one row of the tenant listing.
type TenantSummary struct {
	model.Organization
	CurrentUsers int64         `json:"current_users"`
	Admins       []TenantAdmin `json:"admins"`
}

// TenantDetail extends the summary with per-role population counts.
type TenantDetail struct {
	model.Organization
	TotalUsers       int64            `json:"total_users"`
	RoleDistribution map[string]int64 `json:"role_distribution"`
}

// CreateOrganizationInput carries the fields for tenant provisioning.
type CreateOrganizationInput struct {
	Name             string
	Slug             string
	SubscriptionTier string
	MaxUsers         int
	PartyName        string
	PartySymbol      string
	PartyColor       string
	Settings         string
}

// OrganizationService exposes tenant management. Every operation requires a
// superadmin principal.
type OrganizationService interface {
	Stats(ctx context.Context, p *rbac.Principal) (*TenantStats, error)
	List(ctx context.Context, p *rbac.Principal) ([]TenantSummary, error)
	Get(ctx context.Context, p *rbac.Principal, id uint) (*TenantDetail, error)
	Create(ctx context.Context, p *rbac.Principal, in CreateOrganizationInput) (*model.Organization, error)
}

type organizationService struct {
	orgs     repository.OrganizationRepository
	profiles repository.ProfileRepository
	metrics  *metrics.Metrics
}

// NewOrganizationService builds an OrganizationService.
func NewOrganizationService(
	orgs repository.OrganizationRepository,
	profiles repository.ProfileRepository,
	m *metrics.Metrics,
) OrganizationService {
	return &organizationService{orgs: orgs, profiles: profiles, metrics: m}
}

func (s *organizationService) Stats(ctx context.Context, p *rbac.Principal) (*TenantStats, error) {
	if !rbac.IsSuperAdmin(p) {
		s.metrics.RecordDenial("superadmin")
		return nil, apperrors.ErrPermissionDenied
	}

	total, err := s.orgs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tenants: %w", err)
	}
	active, err := s.orgs.CountByStatus(ctx, model.SubscriptionActive)
	if err != nil {
		return nil, fmt.Errorf("count active tenants: %w", err)
	}
	trial, err := s.orgs.CountByTier(ctx, model.SubscriptionTrial)
	if err != nil {
		return nil, fmt.Errorf("count trial tenants: %w", err)
	}

	return &TenantStats{
		TotalTenants:  total,
		ActiveTenants: active,
		TrialTenants:  trial,
	}, nil
}

func (s *organizationService) List(ctx context.Context, p *rbac.Principal) ([]TenantSummary, error) {
	if !rbac.IsSuperAdmin(p) {
		s.metrics.RecordDenial("superadmin")
		return nil, apperrors.ErrPermissionDenied
	}

	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	summaries := make([]TenantSummary, 0, len(orgs))
	for _, org := range orgs {
		members, err := s.profiles.ListByOrganization(ctx, org.ID)
		if err != nil {
			return nil, fmt.Errorf("list tenant members: %w", err)
		}

		// Show at most three admins per tenant.
		var admins []TenantAdmin
		for _, m := range members {
			if m.Role != string(rbac.RoleAdmin) && m.Role != string(rbac.RoleStateAdmin) {
				continue
			}
			admins = append(admins, TenantAdmin{UserID: m.UserID, Role: m.Role})
			if len(admins) == 3 {
				break
			}
		}

		summaries = append(summaries, TenantSummary{
			Organization: org,
			CurrentUsers: int64(len(members)),
			Admins:       admins,
		})
	}
	return summaries, nil
}

func (s *organizationService) Get(ctx context.Context, p *rbac.Principal, id uint) (*TenantDetail, error) {
	if !rbac.IsSuperAdmin(p) {
		s.metrics.RecordDenial("superadmin")
		return nil, apperrors.ErrPermissionDenied
	}

	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.profiles.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("list tenant members: %w", err)
	}

	distribution := make(map[string]int64)
	for _, m := range members {
		distribution[m.Role]++
	}

	return &TenantDetail{
		Organization:     *org,
		TotalUsers:       int64(len(members)),
		RoleDistribution: distribution,
	}, nil
}

// Create provisions a new tenant. The slug must be globally unique.
func (s *organizationService) Create(ctx context.Context, p *rbac.Principal, in CreateOrganizationInput) (*model.Organization, error) {
	if !rbac.IsSuperAdmin(p) {
		s.metrics.RecordDenial("superadmin")
		return nil, apperrors.ErrPermissionDenied
	}

	existing, err := s.orgs.FindBySlug(ctx, in.Slug)
	if err == nil && existing != nil {
		return nil, apperrors.ErrOrganizationExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	tier := in.SubscriptionTier
	if tier == "" {
		tier = model.SubscriptionTrial
	}
	maxUsers := in.MaxUsers
	if maxUsers <= 0 {
		maxUsers = 50
	}

	org := &model.Organization{
		Name:               in.Name,
		Slug:               in.Slug,
		SubscriptionStatus: model.SubscriptionTrial,
		SubscriptionTier:   tier,
		MaxUsers:           maxUsers,
		Settings:           in.Settings,
		PartyName:          in.PartyName,
		PartySymbol:        in.PartySymbol,
		PartyColor:         in.PartyColor,
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

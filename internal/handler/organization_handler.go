package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pulseadmin/internal/service"
)

// OrganizationHandler bundles superadmin tenant endpoints.
type OrganizationHandler struct {
	svc service.OrganizationService
}

// NewOrganizationHandler creates a handler layer.
func NewOrganizationHandler(svc service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

// CreateOrganizationRequest represents a tenant provisioning request.
type CreateOrganizationRequest struct {
	Name             string `json:"name" validate:"required"`
	Slug             string `json:"slug" validate:"required,min=2,max=100"`
	SubscriptionTier string `json:"subscription_tier"`
	MaxUsers         int    `json:"max_users"`
	PartyName        string `json:"party_name"`
	PartySymbol      string `json:"party_symbol"`
	PartyColor       string `json:"party_color"`
	Settings         string `json:"settings"`
}

// Stats godoc
// @Summary Tenant statistics
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TenantStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /superadmin/tenants/stats [get]
func (h *OrganizationHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListTenants godoc
// @Summary List all tenants
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /superadmin/tenants [get]
func (h *OrganizationHandler) ListTenants(c echo.Context) error {
	tenants, err := h.svc.List(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":   len(tenants),
		"tenants": tenants,
	})
}

// GetTenant godoc
// @Summary Tenant detail
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} service.TenantDetail
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /superadmin/tenants/{id} [get]
func (h *OrganizationHandler) GetTenant(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	detail, err := h.svc.Get(c.Request().Context(), principalFrom(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateTenant godoc
// @Summary Provision a tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrganizationRequest true "Tenant payload"
// @Success 201 {object} model.Organization
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /superadmin/tenants [post]
func (h *OrganizationHandler) CreateTenant(c echo.Context) error {
	var req CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	org, err := h.svc.Create(c.Request().Context(), principalFrom(c), service.CreateOrganizationInput{
		Name:             req.Name,
		Slug:             req.Slug,
		SubscriptionTier: req.SubscriptionTier,
		MaxUsers:         req.MaxUsers,
		PartyName:        req.PartyName,
		PartySymbol:      req.PartySymbol,
		PartyColor:       req.PartyColor,
		Settings:         req.Settings,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, org)
}

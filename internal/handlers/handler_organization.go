package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
	"github.com/pennyledger/pennyledger_app/internal/dto"
	"github.com/pennyledger/pennyledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

// newOrganizationHandler creates a new organizationHandler.
func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
	}
}

// registerOrganizationRoutes registers organization routes and all routes
// scoped beneath a single organization.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOrganizationHandler(services.Organization)

	organizations := rg.Group("/organizations")
	{
		organizations.POST("", h.createOrganization)
		organizations.GET("/:org_id", h.getOrganization)
		organizations.POST("/:org_id/members", h.addMember)
	}

	// Everything the core serves lives under one organization's scope
	scoped := organizations.Group("/:org_id")
	registerAccountRoutes(scoped, services.Account)
	registerJournalRoutes(scoped, services.Journal)
	registerReportingRoutes(scoped, services.Reporting)
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates an organization and enrolls the caller as its admin
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req.Name, creatorUserID)
	if err != nil {
		logger.Error("Failed to create organization in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
		return
	}

	logger.Info("Organization created successfully", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// getOrganization godoc
// @Summary Get an organization by ID
// @Tags organizations
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{org_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("org_id")

	org, err := h.organizationService.FindOrganizationByID(c.Request.Context(), organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Organization not found", slog.String("organization_id", organizationID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		logger.Error("Failed to get organization from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve organization"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addMember godoc
// @Summary Add a user to an organization
// @Description Adds a user with a role. Only organization admins may add members.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   member body dto.AddUserToOrganizationRequest true "Member details"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{org_id}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("org_id")

	var req dto.AddUserToOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Adding user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.organizationService.AddUserToOrganization(c.Request.Context(), addingUserID, req.UserID, organizationID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to add members", slog.String("adding_user_id", addingUserID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Organization not found for member addition", slog.String("organization_id", organizationID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		} else {
			logger.Error("Failed to add member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		}
		return
	}

	logger.Info("Member added successfully", slog.String("organization_id", organizationID), slog.String("user_id", req.UserID))
	c.Status(http.StatusNoContent)
}

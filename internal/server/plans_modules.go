package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/syedfahimdev/omni-admin/internal/catalog/domain"
)

type createModuleTypeRequest struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

type updateModuleTypeRequest struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

type createPlanRequest struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	AllowedModules []string `json:"allowed_modules"`
}

type updatePlanRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	AllowedModules []string `json:"allowed_modules"`
}

func (s *Server) ListModuleTypes(c *gin.Context) {
	resp, err := s.catalogSvc.GetModuleTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateModuleType(c *gin.Context) {
	var req createModuleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateModuleType(c.Request.Context(), catalogdomain.CreateModuleTypeRequest{
		Code:        strings.TrimSpace(req.Code),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateModuleType(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateModuleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.UpdateModuleType(c.Request.Context(), id, catalogdomain.UpdateModuleTypeRequest{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteModuleType(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.DeleteModuleType(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListPlans(c *gin.Context) {
	resp, err := s.catalogSvc.GetSubscriptionPlans(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreatePlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreatePlan(c.Request.Context(), catalogdomain.CreatePlanRequest{
		Code:           strings.TrimSpace(req.Code),
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		AllowedModules: req.AllowedModules,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePlan(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.UpdatePlan(c.Request.Context(), id, catalogdomain.UpdatePlanRequest{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		AllowedModules: req.AllowedModules,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePlan(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.DeletePlan(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

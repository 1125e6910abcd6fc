package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/syedfahimdev/omni-admin/internal/business/domain"
	businessmoduledomain "github.com/syedfahimdev/omni-admin/internal/businessmodule/domain"
	subscriptiondomain "github.com/syedfahimdev/omni-admin/internal/subscription/domain"
)

type businessFieldsRequest struct {
	Name           string `json:"name"`
	LegalName      string `json:"legal_name"`
	Slug           string `json:"slug"`
	Industry       string `json:"industry"`
	Country        string `json:"country"`
	City           string `json:"city"`
	Area           string `json:"area"`
	Address        string `json:"address"`
	WhatsappNumber string `json:"whatsapp_number"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Website        string `json:"website"`
	IsActive       *bool  `json:"is_active"`
}

func (r businessFieldsRequest) fields() businessdomain.BusinessFields {
	return businessdomain.BusinessFields{
		Name:           r.Name,
		LegalName:      r.LegalName,
		Slug:           r.Slug,
		Industry:       r.Industry,
		Country:        r.Country,
		City:           r.City,
		Area:           r.Area,
		Address:        r.Address,
		WhatsappNumber: r.WhatsappNumber,
		Phone:          r.Phone,
		Email:          r.Email,
		Website:        r.Website,
		IsActive:       r.IsActive,
	}
}

func (s *Server) ListBusinesses(c *gin.Context) {
	var query struct {
		Search     string `form:"search"`
		City       string `form:"city"`
		Industry   string `form:"industry"`
		ActiveOnly string `form:"active_only"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	activeOnly, err := parseOptionalBool(query.ActiveOnly)
	if err != nil {
		AbortWithError(c, newValidationError("active_only", "invalid_active_only", "invalid active_only"))
		return
	}

	resp, err := s.businessSvc.List(c.Request.Context(), businessdomain.ListBusinessRequest{
		Search:     query.Search,
		City:       query.City,
		Industry:   query.Industry,
		ActiveOnly: activeOnly != nil && *activeOnly,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateBusiness(c *gin.Context) {
	var req businessFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.Create(c.Request.Context(), req.fields())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBusinessByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.businessSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBusiness(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req businessFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.Update(c.Request.Context(), id, req.fields())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBusinessChannels(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.businessSvc.ListChannels(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type addChannelRequest struct {
	ChannelType string `json:"channel_type"`
	Identifier  string `json:"identifier"`
	Provider    string `json:"provider"`
	IsPrimary   bool   `json:"is_primary"`
}

func (s *Server) AddBusinessChannel(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req addChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.AddChannel(c.Request.Context(), businessdomain.CreateChannelRequest{
		BusinessID:  id,
		ChannelType: strings.TrimSpace(req.ChannelType),
		Identifier:  req.Identifier,
		Provider:    req.Provider,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBusinessSubscription(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.subscriptionSvc.Current(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// No subscription yet is a valid state for a business, not an error.
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type saveSubscriptionRequest struct {
	PlanCode  string `json:"plan_code"`
	Status    string `json:"status"`
	ValidFrom string `json:"valid_from"`
	ValidTo   string `json:"valid_to"`
}

func (s *Server) SaveBusinessSubscription(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req saveSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	validFrom, err := parseOptionalDate(req.ValidFrom)
	if err != nil {
		AbortWithError(c, newValidationError("valid_from", "invalid_valid_from", "invalid valid_from"))
		return
	}
	validTo, err := parseOptionalDate(req.ValidTo)
	if err != nil {
		AbortWithError(c, newValidationError("valid_to", "invalid_valid_to", "invalid valid_to"))
		return
	}

	saveReq := subscriptiondomain.SaveSubscriptionRequest{
		BusinessID: id,
		PlanCode:   strings.TrimSpace(req.PlanCode),
		Status:     strings.TrimSpace(req.Status),
	}
	if validFrom != nil {
		saveReq.ValidFrom = *validFrom
	}
	if validTo != nil {
		saveReq.ValidTo = *validTo
	}

	resp, err := s.subscriptionSvc.Save(c.Request.Context(), saveReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBusinessModules(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.moduleSvc.ListForBusiness(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type toggleModuleRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) ToggleBusinessModule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	code := strings.TrimSpace(c.Param("code"))

	var req toggleModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.moduleSvc.Toggle(c.Request.Context(), businessmoduledomain.ToggleRequest{
		BusinessID: id,
		ModuleCode: code,
		Enabled:    req.Enabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setModuleConfigRequest struct {
	Config string `json:"config"`
}

func (s *Server) SetBusinessModuleConfig(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	code := strings.TrimSpace(c.Param("code"))

	var req setModuleConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.moduleSvc.SetConfig(c.Request.Context(), businessmoduledomain.SetConfigRequest{
		BusinessID: id,
		ModuleCode: code,
		RawConfig:  req.Config,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	grocerydomain "github.com/syedfahimdev/omni-admin/internal/grocery/domain"
)

type productFieldsRequest struct {
	Name            string  `json:"name"`
	SKU             string  `json:"sku"`
	SupplierID      *string `json:"supplier_id"`
	IsPerishable    bool    `json:"is_perishable"`
	DefaultPackSize float64 `json:"default_pack_size"`
	MinStockLevel   float64 `json:"min_stock_level"`
	IsActive        *bool   `json:"is_active"`
}

func (r productFieldsRequest) fields() grocerydomain.ProductFields {
	return grocerydomain.ProductFields{
		Name:            r.Name,
		SKU:             r.SKU,
		SupplierID:      trimStringPtr(r.SupplierID),
		IsPerishable:    r.IsPerishable,
		DefaultPackSize: r.DefaultPackSize,
		MinStockLevel:   r.MinStockLevel,
		IsActive:        r.IsActive,
	}
}

type supplierFieldsRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	WhatsappNumber string `json:"whatsapp_number"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Notes          string `json:"notes"`
}

func (r supplierFieldsRequest) fields() grocerydomain.SupplierFields {
	return grocerydomain.SupplierFields{
		Name:           r.Name,
		Phone:          r.Phone,
		WhatsappNumber: r.WhatsappNumber,
		Email:          r.Email,
		Address:        r.Address,
		Notes:          r.Notes,
	}
}

func (s *Server) ListProducts(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.grocerySvc.ListProducts(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req productFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.grocerySvc.CreateProduct(c.Request.Context(), id, req.fields())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req productFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.grocerySvc.UpdateProduct(c.Request.Context(), id, req.fields())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSuppliers(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.grocerySvc.ListSuppliers(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateSupplier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req supplierFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.grocerySvc.CreateSupplier(c.Request.Context(), id, req.fields())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req supplierFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.grocerySvc.UpdateSupplier(c.Request.Context(), id, req.fields())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLowStockEvents(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var query struct {
		FromDate string `form:"from_date"`
		ToDate   string `form:"to_date"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	fromDate, err := parseOptionalDate(query.FromDate)
	if err != nil {
		AbortWithError(c, newValidationError("from_date", "invalid_from_date", "invalid from_date"))
		return
	}
	toDate, err := parseOptionalDate(query.ToDate)
	if err != nil {
		AbortWithError(c, newValidationError("to_date", "invalid_to_date", "invalid to_date"))
		return
	}

	events, err := s.grocerySvc.ListLowStockEvents(c.Request.Context(), grocerydomain.ListLowStockRequest{
		BusinessID: id,
		FromDate:   fromDate,
		ToDate:     toDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := make([]gin.H, 0, len(events))
	for _, event := range events {
		rows = append(rows, gin.H{
			"id":              event.ID,
			"product_id":      event.ProductID,
			"product_name":    event.ProductName,
			"current_stock":   event.CurrentStock,
			"min_stock_level": event.MinStockLevel,
			"contact_phone":   event.ContactPhone,
			"created_at":      FormatDatetime(event.CreatedAt),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) GetCreditLedger(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	ledger, err := s.grocerySvc.CreditLedger(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entries := make([]gin.H, 0, len(ledger.Entries))
	for _, entry := range ledger.Entries {
		entries = append(entries, gin.H{
			"id":               entry.ID,
			"contact_id":       entry.ContactID,
			"amount":           entry.Amount,
			"transaction_type": entry.TransactionType,
			"transaction_date": FormatDatetime(entry.TransactionDate),
			"notes":            entry.Notes,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"totals_by_contact": ledger.Totals,
		"entries":           entries,
	}})
}

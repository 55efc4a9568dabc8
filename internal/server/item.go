package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
)

// Quantity and price stay strings end to end; the service owns parsing so a
// bad value maps to a field-level validation error instead of a bind failure.
type itemRequest struct {
	CustomerID  string `json:"customer_id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
}

func (s *Server) CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.CreateItem(c.Request.Context(), invoicedomain.CreateItemRequest{
		CustomerID:  strings.TrimSpace(req.CustomerID),
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.invoiceSvc.UpdateItem(c.Request.Context(), invoicedomain.UpdateItemRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

func (s *Server) DeleteItem(c *gin.Context) {
	if err := s.invoiceSvc.DeleteItem(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListItems(c *gin.Context) {
	items, err := s.invoiceSvc.ListAllItems(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

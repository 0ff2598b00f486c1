package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/lockbox/internal/common"
	"github.com/mkraev/lockbox/internal/server/services"
)

// CreateItemRequest is the body of POST /vault.
type CreateItemRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Name    string `json:"name"`
	Size    string `json:"size"`
}

// itemView is the metadata shape of GET /vault entries. Content is never
// part of this view.
type itemView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Size      string `json:"size"`
	DateAdded string `json:"dateAdded"`
}

// CreateItem handles POST /vault: encrypt and store.
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.vault.CreateItem(c.Request.Context(), currentUserID(c), services.CreateItemParams{
		Type:    req.Type,
		Content: req.Content,
		Name:    req.Name,
		Size:    req.Size,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSizeLimitExceeded):
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		default:
			h.logger.Error(c.Request.Context(), "create item failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// ListItems handles GET /vault: the owner's item metadata, newest first.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.vault.ListItems(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error(c.Request.Context(), "list items failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView{
			ID:        item.ID,
			Name:      item.Name,
			Type:      item.Type,
			Size:      item.Size,
			DateAdded: item.DateAdded.UTC().Format("2006-01-02T15:04:05.000Z"),
		})
	}
	c.JSON(http.StatusOK, views)
}

// FetchItem handles GET /vault/:id: load, decrypt, return. A decryption
// failure is a server error (key/data mismatch), distinct from 404.
func (h *Handler) FetchItem(c *gin.Context) {
	item, err := h.vault.FetchItem(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, common.ErrDecryption), errors.Is(err, common.ErrEmptyResult):
			h.logger.Error(c.Request.Context(), "item decryption failed", "id", c.Param("id"))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decrypt item"})
		default:
			h.logger.Error(c.Request.Context(), "fetch item failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": item.Content, "type": item.Type, "name": item.Name})
}

// DeleteItem handles DELETE /vault/:id.
func (h *Handler) DeleteItem(c *gin.Context) {
	err := h.vault.DeleteItem(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "delete item failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

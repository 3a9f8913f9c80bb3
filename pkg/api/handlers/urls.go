package handlers

import (
	"errors"
	"net/http"

	"url-admin/pkg/models"
	"url-admin/pkg/services"

	"github.com/gin-gonic/gin"
)

// ListURLs lists all URL records
func ListURLs(service services.URLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := service.ListURLs(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// CreateURL creates a new URL record
func CreateURL(service services.URLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var create models.URLCreate
		if err := c.ShouldBindJSON(&create); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec, err := service.CreateURL(c.Request.Context(), create)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

// UpdateURL partially updates a URL record
func UpdateURL(service services.URLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.URLUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec, err := service.UpdateURL(c.Request.Context(), c.Param("id"), update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// DeleteURL deletes a URL record
func DeleteURL(service services.URLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.DeleteURL(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GetOnePublic returns one random active URL without authentication
func GetOnePublic(service services.URLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		rec, err := service.PickActive(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PublicURL{URL: rec.URL})
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrURLNotFound), errors.Is(err, services.ErrNoActiveURLs):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lakshya5071/criminal-record-service/internal/cache"
	"github.com/Lakshya5071/criminal-record-service/internal/casegraph"
	"github.com/Lakshya5071/criminal-record-service/internal/validation"
)

// Admin write endpoints. All of them sit behind the token middleware; each
// one invalidates the case's cache entry so reads never serve a stale graph.

// CreateCase validates the posted document and synchronizes a new case graph.
func (h *Handlers) CreateCase(c *gin.Context) {
	var doc casegraph.CaseDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if err := validation.ValidateCase(&doc); err != nil {
		writeValidationError(c, err)
		return
	}

	caseID, err := h.store.Create(&doc)
	if err != nil {
		h.logger.Error("failed to create case", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"case_id": caseID})
}

// UpdateCase validates the posted document and reconciles the stored graph
// for the addressed case against it.
func (h *Handlers) UpdateCase(c *gin.Context) {
	caseID, ok := parseID(c)
	if !ok {
		return
	}

	var doc casegraph.CaseDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if err := validation.ValidateCase(&doc); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := h.store.Update(caseID, &doc); err != nil {
		if errors.Is(err, casegraph.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		h.logger.Error("failed to update case", "case_id", caseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.cache.Delete(cache.CaseKey(caseID))
	c.JSON(http.StatusOK, gin.H{"case_id": caseID})
}

// DeleteCase removes the case and its whole child graph.
func (h *Handlers) DeleteCase(c *gin.Context) {
	caseID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(caseID); err != nil {
		if errors.Is(err, casegraph.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		h.logger.Error("failed to delete case", "case_id", caseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.cache.Delete(cache.CaseKey(caseID))
	c.JSON(http.StatusOK, gin.H{"deleted": caseID})
}

// VerifyToken lets admin clients check a token before using it. It is not
// behind the token middleware so clients can probe without tripping it.
func (h *Handlers) VerifyToken(c *gin.Context) {
	token := c.Query("admin_token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "admin token required"})
		return
	}

	ok, err := h.verifier.Verify(token)
	if err != nil {
		h.logger.Error("token verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"valid": false, "error": "invalid admin token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func writeValidationError(c *gin.Context, err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"errors": verr.Errors,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

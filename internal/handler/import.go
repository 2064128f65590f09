package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	base
	imports *service.ImportService
}

// Preview handles POST /api/import/preview with an .xlsx upload in "file".
func (h *ImportHandler) Preview(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": "file is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": "only .xlsx files are supported"})
		return
	}
	logger.Info("import.upload", "file", file.Filename, "size", file.Size)

	f, err := file.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	p, err := h.imports.Preview(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Confirm handles POST /api/import/confirm.
func (h *ImportHandler) Confirm(c *gin.Context) {
	var req model.ImportConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.imports.Confirm(c.Request.Context(), req.Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

package handler

import (
	"mime"
	"net/http"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	base
	export *service.ExportService
}

// TeamReport streams the monthly XLSX report of a team, or of the caller's
// subtree without team_id.
func (h *ExportHandler) TeamReport(c *gin.Context) {
	month, ok := monthQuery(c, "month", h.today())
	if !ok {
		return
	}
	teamID, ok := optionalID(c, "team_id")
	if !ok {
		return
	}
	data, name, err := h.export.TeamReport(c.Request.Context(), actor(c), teamID, month, h.today())
	if err != nil {
		h.fail(c, err)
		return
	}
	logger.Info("export.team_report", "uid", actor(c).ID, "file", name, "bytes", len(data))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, xlsxContentType, data)
}

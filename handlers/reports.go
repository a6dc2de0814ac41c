package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ReportHandler struct {
	dashboard     *services.Dashboard
	publicBaseURL string
	logger        *zerolog.Logger
}

func NewReportHandler(dashboard *services.Dashboard, publicBaseURL string, logger *zerolog.Logger) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, publicBaseURL: publicBaseURL, logger: logger}
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	name := c.Param("name")

	report, data, err := h.dashboard.Report(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report, "resolution": data.Resolution})
}

// Export downloads one report view as <video>_<view>.csv.
func (h *ReportHandler) Export(c *gin.Context) {
	name := c.Param("name")
	view := c.Param("view")

	data, err := h.dashboard.LoadVideo(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.ExportCSV(&buf, view, data.Counts, data.Aggregation); err != nil {
		respondError(c, err)
		return
	}

	filename := services.ExportFilename(name, view)
	c.Header("Content-Disposition", contentDisposition(filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetPreview describes the preview clip of a video. A mapped clip that is
// missing on disk is a warning, not an error.
func (h *ReportHandler) GetPreview(c *gin.Context) {
	name := c.Param("name")

	if h.dashboard.Previews == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no preview configured"})
		return
	}
	pv, ok := h.dashboard.Previews.Lookup(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no preview configured"})
		return
	}
	if !pv.Exists {
		c.JSON(http.StatusOK, gin.H{
			"data":    pv,
			"notices": []models.Notice{models.Warning("GIF no encontrado en: " + pv.Path)},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pv, "url": "/previews/" + url.PathEscape(pv.File)})
}

// GetQR returns a PNG QR code linking to the video's report page.
func (h *ReportHandler) GetQR(c *gin.Context) {
	name := c.Param("name")

	size := 256
	if s := c.Query("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 64 && n <= 1024 {
			size = n
		}
	}

	png, err := services.ShareQR(h.publicBaseURL, name, size)
	if err != nil {
		h.logger.Error().Err(err).Str("video", name).Msg("qr encode failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode qr code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", asciiFallback(filename), url.PathEscape(filename))
}

func asciiFallback(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r > 126 || r < 32 || r == '"' || r == '\\' {
			out[i] = '_'
		}
	}
	return string(out)
}

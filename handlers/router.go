package handlers

import (
	"fmt"
	"net/http"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/config"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/metrics"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/middleware"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter wires every page and API route of the dashboard.
func NewRouter(cfg *config.Config, dashboard *services.Dashboard, logger *zerolog.Logger) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Instrument())
	r.Use(middleware.SetupCORS(cfg.CORS))
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "Vehicle count dashboard is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	pages := NewPageHandler(dashboard)
	r.GET("/", pages.Index)
	r.GET("/reporte", pages.Report)

	if dashboard.Previews != nil {
		r.Static("/previews", dashboard.Previews.Dir())
	}
	r.GET("/ws/dataset", DatasetWebSocket(cfg.Data.Dir, cfg.WS.PollInterval, logger))

	sites := NewSitesHandler(dashboard)
	reports := NewReportHandler(dashboard, cfg.Server.PublicBaseURL, logger)

	api := r.Group("/api")
	{
		api.GET("/overview", sites.GetOverview)
		api.GET("/sites", sites.GetSites)
		api.GET("/map", sites.GetMap)
		api.GET("/videos", sites.GetVideos)
		api.GET("/videos/:name", sites.GetVideo)
		api.GET("/videos/:name/report", reports.GetReport)
		api.GET("/videos/:name/export/:view", reports.Export)
		api.GET("/videos/:name/preview", reports.GetPreview)
		api.GET("/videos/:name/qr.png", reports.GetQR)
	}

	return r, nil
}

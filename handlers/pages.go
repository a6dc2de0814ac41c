package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/services"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/web"

	"github.com/gin-gonic/gin"
)

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"toJSON": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			return template.JS(b), err
		},
		"pathEscape":  url.PathEscape,
		"queryEscape": url.QueryEscape,
	}).ParseFS(web.Templates, "templates/*.html")
}

// PageHandler renders the two dashboard pages. Load failures never fail the
// page: they become notices and the affected section is skipped.
type PageHandler struct {
	dashboard *services.Dashboard
}

func NewPageHandler(dashboard *services.Dashboard) *PageHandler {
	return &PageHandler{dashboard: dashboard}
}

type indexPage struct {
	Overview *models.Overview
	Map      *models.MapView
	Notices  []models.Notice
}

func (h *PageHandler) Index(c *gin.Context) {
	page := indexPage{}

	table, err := h.dashboard.Metadata.Load(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		page.Notices = append(page.Notices, services.ErrorNotice(err))
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	ov := services.Overview(table)
	page.Overview = &ov
	if table.Dropped > 0 {
		page.Notices = append(page.Notices, models.Info("Filas sin coordenadas válidas omitidas del mapa"))
	}

	view, err := services.BuildMapView(table)
	if err != nil {
		page.Notices = append(page.Notices, services.ErrorNotice(err))
	} else {
		page.Map = view
	}
	c.HTML(http.StatusOK, "index.html", page)
}

type reportPage struct {
	Videos     []string
	Selected   string
	Attributes []models.Attribute
	Report     *models.Report
	Preview    *services.Preview
	Notices    []models.Notice
}

func (h *PageHandler) Report(c *gin.Context) {
	page := reportPage{}
	ctx := c.Request.Context()

	table, err := h.dashboard.Metadata.LoadAll(ctx)
	if err != nil {
		_ = c.Error(err)
		page.Notices = append(page.Notices, services.ErrorNotice(err))
		c.HTML(http.StatusOK, "report.html", page)
		return
	}

	page.Videos = table.Names()
	if len(page.Videos) == 0 {
		page.Notices = append(page.Notices, models.Warning("El archivo de metadatos no contiene videos"))
		c.HTML(http.StatusOK, "report.html", page)
		return
	}

	page.Selected = c.Query("video")
	site, ok := table.Find(page.Selected)
	if !ok {
		if page.Selected != "" {
			page.Notices = append(page.Notices, models.Warning("Video no encontrado: "+page.Selected))
		}
		site = table.Sites[0]
		page.Selected = site.Name
	}
	page.Attributes = services.Attributes(table, site)

	report, _, err := h.dashboard.Report(ctx, page.Selected)
	if err != nil {
		_ = c.Error(err)
		page.Notices = append(page.Notices, services.ErrorNotice(err))
		c.HTML(http.StatusOK, "report.html", page)
		return
	}
	page.Report = report

	if h.dashboard.Previews != nil {
		if pv, ok := h.dashboard.Previews.Lookup(page.Selected); ok && pv.Exists {
			page.Preview = &pv
		}
	}
	c.HTML(http.StatusOK, "report.html", page)
}

package handlers

import (
	"net/http"
	"sort"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/services"

	"github.com/gin-gonic/gin"
)

type SitesHandler struct {
	dashboard *services.Dashboard
}

func NewSitesHandler(dashboard *services.Dashboard) *SitesHandler {
	return &SitesHandler{dashboard: dashboard}
}

func (h *SitesHandler) GetOverview(c *gin.Context) {
	table, err := h.dashboard.Metadata.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": services.Overview(table), "dropped": table.Dropped})
}

// GetSites lists the sites with valid coordinates, ordered by name.
func (h *SitesHandler) GetSites(c *gin.Context) {
	p := ParsePagination(c)

	table, err := h.dashboard.Metadata.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	sites := make([]models.Site, len(table.Sites))
	copy(sites, table.Sites)
	sort.SliceStable(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })

	start := 0
	if p.After != "" {
		start = sort.Search(len(sites), func(i int) bool { return sites[i].Name > p.After })
	}
	rows := sites[start:]

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].Name
	}

	c.JSON(http.StatusOK, CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore})
}

func (h *SitesHandler) GetMap(c *gin.Context) {
	table, err := h.dashboard.Metadata.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := services.BuildMapView(table)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

// GetVideos lists every video of the metadata file, located or not.
func (h *SitesHandler) GetVideos(c *gin.Context) {
	table, err := h.dashboard.Metadata.LoadAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": table.Names()})
}

func (h *SitesHandler) GetVideo(c *gin.Context) {
	name := c.Param("name")

	table, err := h.dashboard.Metadata.LoadAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	site, ok := table.Find(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found", "available": table.Names()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"site":       site,
			"attributes": services.Attributes(table, site),
		},
	})
}

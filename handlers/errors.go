package handlers

import (
	"errors"
	"net/http"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/services"

	"github.com/gin-gonic/gin"
)

// respondError maps loader errors onto JSON error bodies. Every body carries
// the notice the HTML pages would show for the same failure.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	notices := []models.Notice{services.ErrorNotice(err)}

	var noCounts *services.CountsNotFoundError
	var missingCol *services.MissingColumnError
	var notFound *services.FileNotFoundError
	switch {
	case errors.As(err, &noCounts):
		available := noCounts.Available
		if available == nil {
			available = []string{}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": noCounts.Error(), "available": available, "notices": notices})
	case errors.As(err, &missingCol):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": missingCol.Error(), "available_columns": missingCol.Available, "notices": notices})
	case errors.As(err, &notFound):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data file not available", "notices": notices})
	case errors.Is(err, services.ErrNoSites):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "notices": notices})
	case errors.Is(err, services.ErrUnknownView):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyView):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "notices": []models.Notice{models.Warning("No hay datos para exportar en esta vista")}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load data", "notices": notices})
	}
}

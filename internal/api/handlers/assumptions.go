package handlers

import (
	"net/http"

	"art-returns/internal/api/models"
	"art-returns/internal/model"

	"github.com/gin-gonic/gin"
)

// ListAssumptions handles GET /api/v1/assumptions
func ListAssumptions(c *gin.Context) {
	kinds := model.AllAssumptionKinds()
	out := make([]models.AssumptionInfo, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, models.AssumptionInfo{
			Key:   k.Key(),
			Label: k.Label(),
			Unit:  k.Unit(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"periods":     model.PeriodLabels,
		"assumptions": out,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"art-returns/internal/api/models"
	"art-returns/internal/model"

	"github.com/gin-gonic/gin"
)

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// writeError maps model and config failures onto the API error codes.
func writeError(c *gin.Context, err error) {
	status, detail := classify(err)
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func classify(err error) (int, models.ErrorDetail) {
	var conv *model.ConversionError
	var nf *model.NotFoundError

	switch {
	case errors.As(err, &conv):
		details := map[string]interface{}{"label": conv.Label}
		if conv.Period >= 0 && conv.Period < model.Periods {
			details["period"] = model.PeriodLabels[conv.Period]
			details["value"] = conv.Value
		}
		return http.StatusBadRequest, models.ErrorDetail{
			Code:    "CONVERSION_ERROR",
			Message: err.Error(),
			Details: details,
		}
	case errors.As(err, &nf):
		return http.StatusBadRequest, models.ErrorDetail{
			Code:    "ASSUMPTION_NOT_FOUND",
			Message: err.Error(),
			Details: map[string]interface{}{
				"kind":  nf.Kind,
				"label": nf.Label,
			},
		}
	}
	return http.StatusBadRequest, models.ErrorDetail{
		Code:    "INVALID_CONFIG",
		Message: err.Error(),
	}
}

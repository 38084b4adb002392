package handlers

import (
	"net/http"

	"art-returns/internal/api/models"
	"art-returns/internal/irr"

	"github.com/gin-gonic/gin"
)

var solverDescriptions = map[string]string{
	"eigen":  "Finds every root of the NPV polynomial from the eigenvalues of its companion matrix and reports the real rate closest to zero, polished with Newton steps.",
	"newton": "Newton-Raphson iteration on NPV from a starting guess. Faster, but may miss the root or pick a different one for non-conventional cash flows.",
}

// ListSolvers handles GET /api/v1/solvers
func ListSolvers(c *gin.Context) {
	common := []models.ParameterInfo{
		{
			Name:        "tolerance",
			Type:        "float",
			Description: "Convergence tolerance on the rate",
			Default:     irr.DefaultTolerance,
		},
		{
			Name:        "max_iterations",
			Type:        "int",
			Description: "Maximum Newton iterations",
			Default:     irr.DefaultMaxIterations,
		},
	}

	solvers := make([]models.SolverInfo, 0, len(irr.Names()))
	for _, name := range irr.Names() {
		params := append([]models.ParameterInfo(nil), common...)
		if name == "newton" {
			params = append(params, models.ParameterInfo{
				Name:        "guess",
				Type:        "float",
				Description: "Starting rate, as a fraction",
				Default:     irr.DefaultGuess,
			})
		}
		solvers = append(solvers, models.SolverInfo{
			Name:        name,
			Description: solverDescriptions[name],
			Parameters:  params,
		})
	}

	c.JSON(http.StatusOK, gin.H{"solvers": solvers})
}

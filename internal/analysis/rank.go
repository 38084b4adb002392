package analysis

import (
	"sort"

	"art-returns/internal/model"
	"art-returns/internal/returns"
)

// Variation is one named what-if evaluation to compare.
type Variation struct {
	Name       string
	Evaluation *returns.Evaluation
}

type RankedVariation struct {
	Rank       int           `json:"rank"`
	Name       string        `json:"name"`
	Investment float64       `json:"investment"`
	IRRPercent float64       `json:"irr_percent"`
	Payback    model.Payback `json:"payback"`
}

// RankByIRR sorts variations descending by IRR; ties keep input order.
func RankByIRR(vars []Variation) []RankedVariation {
	out := make([]RankedVariation, 0, len(vars))
	for _, v := range vars {
		if v.Evaluation == nil {
			continue
		}
		out = append(out, RankedVariation{
			Name:       v.Name,
			Investment: v.Evaluation.Investment,
			IRRPercent: v.Evaluation.IRRPercent,
			Payback:    v.Evaluation.Payback,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IRRPercent > out[j].IRRPercent
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

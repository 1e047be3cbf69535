package regress

import (
	"math"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// EventStudy estimates the year-by-year tariff interactions and returns one
// point per sample year. The reference year is pinned at zero with no
// standard error; every other year carries its CRV1-clustered estimate and a
// 95% confidence interval.
func EventStudy(f *Frame, years []int, refYear int, controls []string, cluster string) (*Fit, []domain.EventStudyPoint, error) {
	regressors := make([]string, 0, len(years)-1+len(controls))
	for _, y := range years {
		if y != refYear {
			regressors = append(regressors, EventColumn(y))
		}
	}
	regressors = append(regressors, controls...)

	ft, err := Estimate(f, Spec{
		Name:         "Event study",
		Outcome:      "etr_winsorized",
		Regressors:   regressors,
		FixedEffects: []string{"cik", "year"},
		Cluster:      cluster,
	})
	if err != nil {
		return nil, nil, err
	}

	points := make([]domain.EventStudyPoint, 0, len(years))
	for _, y := range years {
		if y == refYear {
			points = append(points, domain.EventStudyPoint{
				Year:      y,
				Coef:      0,
				SE:        0,
				PValue:    math.NaN(),
				Reference: true,
			})
			continue
		}
		j, err := ft.coefIndex(EventColumn(y))
		if err != nil {
			return nil, nil, err
		}
		points = append(points, domain.EventStudyPoint{
			Year:   y,
			Coef:   ft.Coef[j],
			SE:     ft.SE[j],
			PValue: ft.PValue[j],
			CILow:  ft.Coef[j] - 1.96*ft.SE[j],
			CIHigh: ft.Coef[j] + 1.96*ft.SE[j],
		})
	}
	return ft, points, nil
}

package regress

import (
	"fmt"
	"log/slog"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Controls are the firm-level covariates carried by every controlled
// specification.
var Controls = []string{"log_revenue", "rd_intensity", "leverage"}

// ClusterVar is the cluster level for every specification: treatment varies
// at the NAICS 3-digit industry, so that is where errors are clustered.
const ClusterVar = "naics3"

// MainParam is the diff-in-diff coefficient of interest.
const MainParam = "tariff_x_post"

// PlaceboParam is the fake-treatment interaction used by the placebo check.
const PlaceboParam = "tariff_x_post_placebo"

// Suite holds every estimate the analysis stage reports.
type Suite struct {
	Main        *Fit
	Bootstrap   domain.BootstrapResult
	EventFit    *Fit
	EventPoints []domain.EventStudyPoint
	Robustness  []*Fit

	// Results flattens the headline coefficient of each specification,
	// main model first, in estimation order.
	Results []domain.RegressionResult
}

// SuiteOptions configures the full estimation run.
type SuiteOptions struct {
	Years         []int // sample years present in the frame
	ReferenceYear int
	PostYear      int
	BootstrapReps int
	BootstrapSeed int64
}

// RunSuite estimates the main diff-in-diff model, its wild cluster
// bootstrap, the event study, and the R1-R10 robustness grid. Every
// specification clusters at the NAICS 3-digit level.
func RunSuite(f *Frame, opts SuiteOptions, logger *slog.Logger) (*Suite, error) {
	mainSpec := Spec{
		Name:         "Main (ETR + controls)",
		Outcome:      "etr_winsorized",
		Regressors:   append([]string{MainParam}, Controls...),
		FixedEffects: []string{"cik", "year"},
		Cluster:      ClusterVar,
	}

	main, err := Estimate(f, mainSpec)
	if err != nil {
		return nil, fmt.Errorf("main model: %w", err)
	}
	logger.Info("main model estimated",
		"n", main.N, "clusters", main.NClusters,
		"coef", main.Coef[0], "se", main.SE[0], "pvalue", main.PValue[0])

	boot, err := WildClusterBootstrap(main, MainParam, opts.BootstrapReps, opts.BootstrapSeed)
	if err != nil {
		return nil, fmt.Errorf("wild cluster bootstrap: %w", err)
	}
	logger.Info("wild cluster bootstrap done",
		"reps", boot.Reps, "t", boot.TStat, "pvalue", boot.PValue)

	eventFit, points, err := EventStudy(f, opts.Years, opts.ReferenceYear, Controls, ClusterVar)
	if err != nil {
		return nil, fmt.Errorf("event study: %w", err)
	}
	logger.Info("event study estimated", "n", eventFit.N, "years", len(points))

	specs, params, err := robustnessSpecs(f, mainSpec, opts)
	if err != nil {
		return nil, err
	}

	suite := &Suite{
		Main:        main,
		Bootstrap:   boot,
		EventFit:    eventFit,
		EventPoints: points,
	}
	mainResult, err := main.Result(MainParam)
	if err != nil {
		return nil, err
	}
	suite.Results = append(suite.Results, mainResult)

	for i, spec := range specs {
		ft, err := Estimate(f, spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		res, err := ft.Result(params[i])
		if err != nil {
			return nil, err
		}
		suite.Robustness = append(suite.Robustness, ft)
		suite.Results = append(suite.Results, res)
		logger.Info("robustness check estimated",
			"spec", spec.Name, "n", ft.N,
			"coef", res.Coef, "pvalue", res.PValue)
	}

	return suite, nil
}

// robustnessSpecs builds the R1-R10 grid around the main specification.
func robustnessSpecs(f *Frame, main Spec, opts SuiteOptions) ([]Spec, []string, error) {
	trendCols, err := f.AddLinearTrends("naics2", "year_num", "trend_naics2")
	if err != nil {
		return nil, nil, fmt.Errorf("industry trend columns: %w", err)
	}
	balanced, err := f.BalancedFirms(len(opts.Years))
	if err != nil {
		return nil, nil, err
	}
	ciks, err := f.Categorical("cik")
	if err != nil {
		return nil, nil, err
	}
	yearNum, err := f.Numeric("year_num")
	if err != nil {
		return nil, nil, err
	}

	withControls := func(first string) []string {
		return append([]string{first}, Controls...)
	}

	specs := []Spec{
		{
			Name:         "R1: No controls",
			Outcome:      "etr_winsorized",
			Regressors:   []string{MainParam},
			FixedEffects: []string{"cik", "year"},
			Cluster:      ClusterVar,
		},
		{
			// Broad sector trends that leave the identifying
			// within-sector variation intact.
			Name:         "R2: SIC1 x year FE",
			Outcome:      "etr_winsorized",
			Regressors:   withControls(MainParam),
			FixedEffects: []string{"cik", "sic1^year"},
			Cluster:      ClusterVar,
		},
		{
			// Aggressive: absorbs most cross-industry variation,
			// reported for transparency.
			Name:         "R3: NAICS2 x year FE",
			Outcome:      "etr_winsorized",
			Regressors:   withControls(MainParam),
			FixedEffects: []string{"cik", "naics2^year"},
			Cluster:      ClusterVar,
		},
		{
			Name:         "R4: NAICS2 linear trends",
			Outcome:      "etr_winsorized",
			Regressors:   append(withControls(MainParam), trendCols...),
			FixedEffects: []string{"cik", "year"},
			Cluster:      ClusterVar,
		},
		{
			// Fake treatment on pre-period data only; a clean
			// pre-trend shows no effect here.
			Name:         "R5: Placebo (2017)",
			Outcome:      "etr_winsorized",
			Regressors:   withControls(PlaceboParam),
			FixedEffects: []string{"cik", "year"},
			Cluster:      ClusterVar,
			Filter: func(_ *Frame, row int) bool {
				return int(yearNum[row]) < opts.PostYear
			},
		},
		{
			// Attrition check: firms present in every sample year.
			Name:         "R6: Balanced panel",
			Outcome:      main.Outcome,
			Regressors:   main.Regressors,
			FixedEffects: main.FixedEffects,
			Cluster:      main.Cluster,
			Filter: func(_ *Frame, row int) bool {
				return balanced[ciks[row]]
			},
		},
		{
			Name:         "R7: ETR p5/p95",
			Outcome:      "etr_w5_95",
			Regressors:   withControls(MainParam),
			FixedEffects: []string{"cik", "year"},
			Cluster:      ClusterVar,
		},
		{
			Name:         "R8: ETR [0,100]",
			Outcome:      "etr_trim_100",
			Regressors:   withControls(MainParam),
			FixedEffects: []string{"cik", "year"},
			Cluster:      ClusterVar,
		},
		{
			Name:         "R9: ETR [0,60]",
			Outcome:      "etr_trim_60",
			Regressors:   withControls(MainParam),
			FixedEffects: []string{"cik", "year"},
			Cluster:      ClusterVar,
		},
		{
			Name:         "R10: FPS outcome",
			Outcome:      "foreign_profit_share_winsorized",
			Regressors:   withControls(MainParam),
			FixedEffects: []string{"cik", "year"},
			Cluster:      ClusterVar,
		},
	}

	params := make([]string, len(specs))
	for i := range params {
		params[i] = MainParam
	}
	params[4] = PlaceboParam

	return specs, params, nil
}

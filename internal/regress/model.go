package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Spec describes one fixed-effects regression: the outcome, the regressors,
// the categorical fixed effects to absorb, and the cluster variable for the
// CRV1 covariance. Filter, when set, restricts the sample before the
// complete-cases drop.
type Spec struct {
	Name         string
	Outcome      string
	Regressors   []string
	FixedEffects []string
	Cluster      string
	Filter       func(f *Frame, row int) bool
}

// Fit holds one estimated specification. The demeaned sample is retained so
// the wild cluster bootstrap can resample from it.
type Fit struct {
	Spec      Spec
	Coef      []float64 // aligned with Spec.Regressors
	SE        []float64
	TStat     []float64
	PValue    []float64
	N         int
	NClusters int
	KTotal    int // regressors + absorbed fixed-effect dof

	y        []float64 // demeaned outcome
	x        *mat.Dense
	xtxInv   *mat.Dense
	resid    []float64
	clusters feIndex
}

// coefIndex locates a regressor by name.
func (ft *Fit) coefIndex(param string) (int, error) {
	for j, name := range ft.Spec.Regressors {
		if name == param {
			return j, nil
		}
	}
	return 0, fmt.Errorf("spec %s has no regressor %q", ft.Spec.Name, param)
}

// Result packages one coefficient as a reportable row.
func (ft *Fit) Result(param string) (domain.RegressionResult, error) {
	j, err := ft.coefIndex(param)
	if err != nil {
		return domain.RegressionResult{}, err
	}
	return domain.RegressionResult{
		Spec:      ft.Spec.Name,
		Param:     param,
		Coef:      ft.Coef[j],
		SE:        ft.SE[j],
		TStat:     ft.TStat[j],
		PValue:    ft.PValue[j],
		N:         ft.N,
		NClusters: ft.NClusters,
	}, nil
}

// Estimate runs one specification: it keeps the complete cases, absorbs the
// fixed effects by iterated demeaning, solves the demeaned system by QR, and
// computes CRV1 standard errors clustered on the spec's cluster variable
// with p-values against t(G-1).
func Estimate(f *Frame, spec Spec) (*Fit, error) {
	if spec.Cluster == "" {
		return nil, fmt.Errorf("spec %s: cluster variable required", spec.Name)
	}
	if len(spec.Regressors) == 0 {
		return nil, fmt.Errorf("spec %s: no regressors", spec.Name)
	}

	outcome, err := f.Numeric(spec.Outcome)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", spec.Name, err)
	}
	regCols := make([][]float64, len(spec.Regressors))
	for j, name := range spec.Regressors {
		col, err := f.Numeric(name)
		if err != nil {
			return nil, fmt.Errorf("spec %s: %w", spec.Name, err)
		}
		regCols[j] = col
	}
	feCols := make([][]string, len(spec.FixedEffects))
	for j, name := range spec.FixedEffects {
		col, err := f.Categorical(name)
		if err != nil {
			return nil, fmt.Errorf("spec %s: %w", spec.Name, err)
		}
		feCols[j] = col
	}
	clusterCol, err := f.Categorical(spec.Cluster)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", spec.Name, err)
	}

	// Complete cases: outcome, every regressor, every fixed-effect level,
	// and the cluster level must all be present.
	rows := make([]int, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		if spec.Filter != nil && !spec.Filter(f, i) {
			continue
		}
		if domain.IsMissing(outcome[i]) {
			continue
		}
		keep := true
		for _, col := range regCols {
			if domain.IsMissing(col[i]) {
				keep = false
				break
			}
		}
		if keep {
			for _, col := range feCols {
				if col[i] == "" {
					keep = false
					break
				}
			}
		}
		if keep && clusterCol[i] == "" {
			keep = false
		}
		if keep {
			rows = append(rows, i)
		}
	}

	n := len(rows)
	k := len(spec.Regressors)
	if n == 0 {
		return nil, fmt.Errorf("spec %s: %w", spec.Name, apperrors.ErrNoObservations)
	}

	y := make([]float64, n)
	for i, r := range rows {
		y[i] = outcome[r]
	}
	xCols := make([][]float64, k)
	for j, col := range regCols {
		xCols[j] = make([]float64, n)
		for i, r := range rows {
			xCols[j][i] = col[r]
		}
	}

	fes := make([]feIndex, len(feCols))
	for j, col := range feCols {
		fes[j] = encodeFE(col, rows)
	}
	clusters := encodeFE(clusterCol, rows)
	if clusters.nLevels < 2 {
		return nil, fmt.Errorf("spec %s: %d cluster(s), need at least 2", spec.Name, clusters.nLevels)
	}

	all := make([][]float64, 0, k+1)
	all = append(all, y)
	all = append(all, xCols...)
	demean(all, fes)

	x := mat.NewDense(n, k, nil)
	for j := range xCols {
		x.SetCol(j, xCols[j])
	}

	beta, resid, err := olsQR(y, x)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", spec.Name, err)
	}
	xtxInv, err := xtxInverse(x)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", spec.Name, err)
	}

	kTotal := k + absorbedDOF(fes)
	vcov := crv1(x, resid, clusters, xtxInv, kTotal)
	se := clusterSE(vcov)

	ft := &Fit{
		Spec:      spec,
		Coef:      beta,
		SE:        se,
		TStat:     make([]float64, k),
		PValue:    make([]float64, k),
		N:         n,
		NClusters: clusters.nLevels,
		KTotal:    kTotal,
		y:         y,
		x:         x,
		xtxInv:    xtxInv,
		resid:     resid,
		clusters:  clusters,
	}
	for j := 0; j < k; j++ {
		ft.TStat[j] = beta[j] / se[j]
		ft.PValue[j] = tPValue(ft.TStat[j], clusters.nLevels-1)
	}
	return ft, nil
}

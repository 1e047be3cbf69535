package regress

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// crv1 computes the CRV1 cluster-robust covariance matrix
//
//	V = c * (X'X)^{-1} (sum_g s_g s_g') (X'X)^{-1},  s_g = X_g' u_g
//
// with the small-sample adjustment c = G/(G-1) * (N-1)/(N-K), where K counts
// the regressors plus the absorbed fixed-effect degrees of freedom.
func crv1(x *mat.Dense, resid []float64, clusters feIndex, xtxInv *mat.Dense, kTotal int) *mat.Dense {
	n, k := x.Dims()
	g := clusters.nLevels

	// score sums per cluster
	scores := mat.NewDense(g, k, nil)
	for i := 0; i < n; i++ {
		c := clusters.codes[i]
		for j := 0; j < k; j++ {
			scores.Set(c, j, scores.At(c, j)+x.At(i, j)*resid[i])
		}
	}

	var meat mat.Dense
	meat.Mul(scores.T(), scores)

	var bread mat.Dense
	bread.Mul(xtxInv, &meat)
	var vcov mat.Dense
	vcov.Mul(&bread, xtxInv)

	adj := float64(g) / float64(g-1) * float64(n-1) / float64(n-kTotal)
	vcov.Scale(adj, &vcov)
	return &vcov
}

// clusterSE extracts standard errors from the covariance diagonal.
func clusterSE(vcov *mat.Dense) []float64 {
	k, _ := vcov.Dims()
	se := make([]float64, k)
	for j := 0; j < k; j++ {
		se[j] = math.Sqrt(vcov.At(j, j))
	}
	return se
}

// tPValue returns the two-sided p-value for a t statistic against the
// Student t distribution with df degrees of freedom. With clustered errors
// df is G-1.
func tPValue(t float64, df int) float64 {
	if df < 1 {
		return math.NaN()
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return 2 * dist.CDF(-math.Abs(t))
}

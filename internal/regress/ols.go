package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// olsQR solves the least squares problem y = Xb + u via QR decomposition
// and returns the coefficients and residuals.
func olsQR(y []float64, x *mat.Dense) ([]float64, []float64, error) {
	n, k := x.Dims()
	if len(y) != n {
		return nil, nil, fmt.Errorf("ols: %d rows in X, %d in y", n, len(y))
	}
	if n < k {
		return nil, nil, fmt.Errorf("ols: %d observations for %d regressors", n, k)
	}

	var qr mat.QR
	qr.Factorize(x)

	yMat := mat.NewDense(n, 1, append([]float64(nil), y...))
	var betaMat mat.Dense
	if err := qr.SolveTo(&betaMat, false, yMat); err != nil {
		return nil, nil, fmt.Errorf("ols: singular design matrix: %w", err)
	}

	beta := make([]float64, k)
	for j := 0; j < k; j++ {
		beta[j] = betaMat.At(j, 0)
	}

	resid := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted := 0.0
		for j := 0; j < k; j++ {
			fitted += x.At(i, j) * beta[j]
		}
		resid[i] = y[i] - fitted
	}
	return beta, resid, nil
}

// xtxInverse returns (X'X)^{-1}. The regressor count is small so a dense
// inverse is fine.
func xtxInverse(x *mat.Dense) (*mat.Dense, error) {
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("ols: X'X not invertible: %w", err)
	}
	return &inv, nil
}

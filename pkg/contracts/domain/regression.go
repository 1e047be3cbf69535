package domain

// RegressionResult summarizes one estimated specification for the focal
// parameter.
type RegressionResult struct {
	Spec      string  `json:"spec"`
	Param     string  `json:"param"`
	Coef      float64 `json:"coef"`
	SE        float64 `json:"se"`
	TStat     float64 `json:"t_stat"`
	PValue    float64 `json:"p_value"`
	N         int     `json:"n"`
	NClusters int     `json:"n_clusters"`
}

// EventStudyPoint is one year-interaction coefficient of the event study.
// The reference year carries a zero coefficient by construction.
type EventStudyPoint struct {
	Year      int     `json:"year"`
	Coef      float64 `json:"coef"`
	SE        float64 `json:"se"`
	PValue    float64 `json:"p_value"`
	CILow     float64 `json:"ci_low"`
	CIHigh    float64 `json:"ci_high"`
	Reference bool    `json:"reference"`
}

// BootstrapResult is the wild cluster bootstrap inference for one parameter.
type BootstrapResult struct {
	Param  string  `json:"param"`
	Reps   int     `json:"reps"`
	Seed   int64   `json:"seed"`
	TStat  float64 `json:"t_stat"`
	PValue float64 `json:"p_value"`
}

// Package regress estimates the tariff-exposure difference-in-differences
// models on the merged firm-year panel: two-way fixed effects OLS with
// fixed-effect absorption by iterated demeaning, CRV1 cluster-robust
// standard errors at the NAICS 3-digit level, a wild cluster bootstrap for
// the few-clusters correction, a year-by-year event study, and a grid of
// robustness specifications.
package regress

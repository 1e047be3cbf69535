// Package dataset assembles and persists the analysis dataset.
//
// It cleans the SEC income panel, joins on the Bloomberg firm universe and
// time-series financials and the NAICS-3 tariff exposure, enforces the merge
// invariants (unique firm-year key, no join fan-out), and runs the data
// quality checks before the panel is frozen to merged_panel.csv. It also
// produces the data dictionary and summary statistics consumed by the
// documentation stage.
package dataset

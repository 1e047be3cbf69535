// Package bloomberg loads firm characteristics and time-series financials
// from the Bloomberg terminal export workbook (firm_variables.xlsx).
//
// The workbook carries one firm_universe sheet with static attributes (its
// first data row is a junk header/count row) and eight wide-format
// time-series sheets, one per financial variable, each Ticker x year.
package bloomberg

// Package exporter provides CSV export functionality for the pipeline.
//
// Every stage output is a plain CSV file; missing numeric values are written
// as empty cells and parsed back to NaN so that missingness survives the
// round trip between stages.
package exporter

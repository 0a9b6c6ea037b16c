// Package core implements the financial analytics engine: spreadsheet
// ingestion and merge, column role inference, health scoring, per-category
// anomaly detection and short-horizon trend forecasting. Every computation is
// a pure function of an immutable Dataset; sourcing the inputs and rendering
// the results belong to the callers in cmd and internal.
package core

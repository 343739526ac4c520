// Package report serialises scan results as JSON or SARIF.
package report

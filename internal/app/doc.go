// Package app wires git history, the heuristic scanner, the classifier and
// the report writer into a single run.
package app

// Package diff extracts added lines from unified diff text.
package diff

// Package detect finds hardcoded credentials in diffs and plain text.
//
// Each candidate line is tested against an ordered list of assignment rules;
// the first rule that matches wins and the line's Shannon entropy decides the
// confidence tier of the resulting finding.
package detect

package diff

import "strings"

// AddedLine is a line introduced by a diff
type AddedLine struct {
	File     string
	Position int // 1-based line number within the diff text, not the file
	Text     string
}

// ParseAddedLines extracts the added lines of a unified diff, tagging each
// with the file named by the closest preceding "+++ " header.
func ParseAddedLines(diff string) []AddedLine {
	var out []AddedLine
	current := ""
	for i, line := range SplitLines(diff) {
		if strings.HasPrefix(line, "+++ ") {
			if path, ok := headerPath(line); ok {
				current = path
			}
		}

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "+++") {
			continue
		}

		file := current
		if file == "" {
			file = "unknown"
		}
		out = append(out, AddedLine{
			File:     file,
			Position: i + 1,
			Text:     trimmed[1:],
		})
	}
	return out
}

// headerPath returns the path of a "+++ b/path" header. A "/dev/null"
// target yields "" so following lines are reported as unknown.
func headerPath(line string) (string, bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return "", false
	}
	path := parts[1]
	if path == "/dev/null" {
		return "", true
	}
	return strings.TrimPrefix(path, "b/"), true
}

// SplitLines splits on \n, \r\n and \r; a trailing newline does not yield an
// empty last line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

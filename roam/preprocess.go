package roam

import "strings"

// preprocessLine turns a raw input line into its indentation count and the
// cleaned text the structure tracker works on. Leading spaces are counted and
// removed, one markdown bullet is stripped, lines for ignored properties are
// blanked (keeping their indentation for the structural logic) and a leading
// {{...}} directive is dropped without being evaluated.
func preprocessLine(rawLine string, ignore []string) (int, string) {

	// Strip blanks at the beginning and calculate indentation based on the
	// difference in length. We do not support other whitespace like tabs.
	line := strings.TrimLeft(rawLine, " ")
	indentation := len(rawLine) - len(line)

	line = stripBullet(line)

	// The property check runs on the text before the directive strip
	if isIgnoredProperty(line, ignore) {
		return indentation, ""
	}

	return indentation, stripDirective(line)
}

// stripBullet removes a single leading markdown list marker.
func stripBullet(line string) string {
	if strings.HasPrefix(line, "- ") {
		return line[2:]
	}
	return line
}

// isIgnoredProperty reports whether the line sets one of the Roam properties
// configured to be dropped, like "tags:: foo".
func isIgnoredProperty(line string, ignore []string) bool {
	for _, name := range ignore {
		if strings.HasPrefix(line, name+"::") {
			return true
		}
	}
	return false
}

// stripDirective removes one leading {{...}} directive up to the first
// closing braces. Empty directives are not recognized and stay literal.
func stripDirective(line string) string {
	if !strings.HasPrefix(line, "{{") {
		return line
	}
	end := strings.Index(line[2:], "}}")
	if end < 1 {
		return line
	}
	return line[2+end+2:]
}

package roam

import (
	"regexp"
	"strings"

	"github.com/Cathrach/roam-tools/sliceedit"
)

// Precompiled patterns for the two link substitutions. Page links are turned
// into citations only when their text has the letters-digits-letters shape of
// a bibliography key.
var (
	reCitation    = regexp.MustCompile(`\[\[(.*?)\]\]`)
	reCitationKey = regexp.MustCompile(`^[a-zA-Z]+[0-9]+[a-zA-Z]*$`)
	reHyperlink   = regexp.MustCompile(`\[(.*?)\]\((.*)\)`)
)

// equationBlock reports whether the whole line is a $$...$$ display equation
// and returns its content. The content may not contain further '$' markers.
func equationBlock(line string) (string, bool) {
	if len(line) < 4 || !strings.HasPrefix(line, "$$") || !strings.HasSuffix(line, "$$") {
		return "", false
	}
	content := line[2 : len(line)-2]
	if strings.Contains(content, "$") {
		return "", false
	}
	return content, true
}

// renderEquation wraps a display equation in an unnumbered equation
// environment. The environment opens and closes on the same logical line, so
// it never enters the environment stack.
func renderEquation(content string) string {
	return "\\begin{equation*}\n" + content + "\n\\end{equation*}"
}

// renderInline applies the stateless per-line substitutions: markup
// delimiters in matched pairs, residual inline math markers, citations and
// hyperlinks. Display equations are handled by the caller before any of
// these rules apply.
//
// All markup pairs are queued on a single edit buffer: the three delimiters
// and the inline math marker can never occupy overlapping byte ranges, so
// the edits commute and the buffer applies them in one pass.
func renderInline(line string) string {
	b := sliceedit.NewBuffer([]byte(line))
	b.WrapPairs("__", `\emph{`, "}")
	b.WrapPairs("**", `\textbf{`, "}")
	b.WrapPairs("^^", `\hl{`, "}")
	b.ReplaceAllString("$$", "$")
	line = b.String()

	line = reCitation.ReplaceAllStringFunc(line, renderCitation)
	line = reHyperlink.ReplaceAllString(line, `\href{${2}}{${1}}`)
	return line
}

// renderCitation turns a [[Knuth84]] page link into \cite{Knuth84}. Link text
// that does not look like a citation key keeps only the text, silently
// dropping the brackets.
func renderCitation(match string) string {
	text := match[2 : len(match)-2]
	if !reCitationKey.MatchString(text) {
		return text
	}
	return `\cite{` + text + `}`
}

package roam

import (
	"fmt"
	"strings"
)

// environmentFrame records one open LaTeX environment and the indentation of
// the line that opened it.
type environmentFrame struct {
	indentation int
	name        string
}

// tracker holds the structural state of one document conversion: the stack of
// open environments, the indentations at which lines become list items, and
// the indentation baselines for sections and paragraphs. A fresh tracker is
// created for every conversion.
//
// The stack is strictly increasing in indentation from bottom to top, so the
// item indentations derived from list frames never collide.
type tracker struct {
	environments []environmentFrame
	itemIndents  map[int]bool
	indentSize   int

	// indentation of the last heading line, undefined until one is seen
	sectionIndentation int
	sectionSeen        bool

	// baseline indentation for paragraph breaks, undefined right after a
	// heading and established by the next content line
	parIndentation int
	parSeen        bool

	opens  int
	closes int
}

func newTracker(indentSize int) *tracker {
	return &tracker{
		itemIndents: make(map[int]bool),
		indentSize:  indentSize,
	}
}

// processLine runs the structural logic for one cleaned line and returns the
// text to write for it: the closings owed by its indentation, a paragraph
// break when the line returns to the baseline, and the rendered line itself,
// marked as an item when a list frame owns its indentation.
func (t *tracker) processLine(indentation int, line string) string {

	// Heading markers reset the section and paragraph baselines even when
	// they are too deep to be converted.
	establishing := false
	if strings.HasPrefix(line, "#") {
		t.sectionIndentation = indentation
		t.sectionSeen = true
		t.parSeen = false
		line = renderHeading(line)
	} else if !t.parSeen {
		t.parIndentation = indentation
		t.parSeen = true
		establishing = true
	}

	var sb strings.Builder
	sb.WriteString(t.closeTo(indentation))

	// A line back at the paragraph baseline starts a new paragraph. The line
	// that establishes the baseline does not.
	if t.parSeen && !establishing && indentation <= t.parIndentation {
		sb.WriteString("\n")
		t.parIndentation = indentation
	}

	if name, ok := environmentBegin(line); ok {
		t.environments = append(t.environments, environmentFrame{indentation, name})
		if isListEnvironment(name) {
			t.itemIndents[indentation+t.indentSize] = true
		}
		t.opens++
	}

	if content, ok := equationBlock(line); ok {
		line = renderEquation(content)
	} else {
		line = renderInline(line)
		if t.itemIndents[indentation] {
			line = `\item ` + line
		}
	}

	sb.WriteString(line)
	return sb.String()
}

// closeTo closes every environment opened at this indentation or deeper and
// returns their closing commands, most recently opened first.
func (t *tracker) closeTo(indentation int) string {
	var sb strings.Builder
	for len(t.environments) > 0 && t.environments[len(t.environments)-1].indentation >= indentation {
		t.closeFrame(&sb)
	}
	return sb.String()
}

// closeRemaining force-closes everything still open at the end of the
// document.
func (t *tracker) closeRemaining() string {
	var sb strings.Builder
	for len(t.environments) > 0 {
		t.closeFrame(&sb)
	}
	return sb.String()
}

// closeFrame pops the top frame and emits its closing command. The item
// indentation owned by a list frame dies with the frame.
func (t *tracker) closeFrame(sb *strings.Builder) {
	top := t.environments[len(t.environments)-1]
	t.environments = t.environments[:len(t.environments)-1]
	fmt.Fprintf(sb, "\\end{%s}\n", top.name)
	if isListEnvironment(top.name) {
		delete(t.itemIndents, top.indentation+t.indentSize)
	}
	t.closes++
}

// renderHeading converts the three supported heading depths, each preceded by
// a blank line. Deeper or spaceless markers stay as literal text.
func renderHeading(line string) string {
	switch {
	case strings.HasPrefix(line, "# "):
		return "\n\\section{" + line[2:] + "}"
	case strings.HasPrefix(line, "## "):
		return "\n\\subsection{" + line[3:] + "}"
	case strings.HasPrefix(line, "### "):
		return "\n\\subsubsection{" + line[4:] + "}"
	}
	return line
}

// environmentBegin reports an explicit \begin{name} at the start of the line
// and extracts the environment name, up to the first closing brace.
func environmentBegin(line string) (string, bool) {
	const prefix = `\begin{`
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	end := strings.IndexByte(line[len(prefix):], '}')
	if end < 0 {
		return "", false
	}
	return line[len(prefix) : len(prefix)+end], true
}

// isListEnvironment reports whether the environment numbers its children with
// \item commands.
func isListEnvironment(name string) bool {
	return name == "itemize" || name == "enumerate"
}

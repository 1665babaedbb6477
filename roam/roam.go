// Package roam converts Roam-style indented markdown exports into LaTeX
// documents. The conversion is a single pass over the input lines: a small
// preprocessor cleans each line, a structure tracker turns indentation
// changes into environment openings and closings, and a set of stateless
// substitutions rewrites the inline markup.
package roam

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/hesusruiz/vcutils/yaml"
	"go.uber.org/zap"
)

// Document holds the input lines and the options of one conversion.
type Document struct {
	// Config is fully resolved from file and front matter after NewDocument;
	// the command line may still override it before ToLaTeX runs.
	Config Config

	sb    strings.Builder
	lines []string
	start int // index of the first line after the front matter
	log   *zap.SugaredLogger
}

// NewDocument reads the whole input through the scanner and merges the YAML
// front matter, if any, into the document configuration. baseDir resolves
// relative file references appearing in that front matter.
func NewDocument(s *bufio.Scanner, baseDir string, cfg Config, logger *zap.SugaredLogger) (*Document, error) {
	doc := &Document{Config: cfg, log: logger}

	for s.Scan() {
		doc.lines = append(doc.lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	start, err := doc.preprocessFrontMatter(baseDir)
	if err != nil {
		return nil, err
	}
	doc.start = start

	return doc, nil
}

// NewDocumentFromFile reads fileName and prepares its conversion, resolving
// the configuration from roam2tex.yaml next to the file and from the
// document's own front matter on top of cfg.
func NewDocumentFromFile(fileName string, cfg Config, logger *zap.SugaredLogger) (*Document, error) {
	if err := cfg.loadConfigFile(fileName, logger); err != nil {
		return nil, err
	}

	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dir, _ := filepath.Split(fileName)
	return NewDocument(bufio.NewScanner(file), dir, cfg, logger)
}

// preprocessFrontMatter merges YAML front matter into the document
// configuration and returns the index of the first content line. We accept
// YAML data only at the beginning of the document. Front matter that does not
// parse is ignored, but its lines stay consumed.
func (doc *Document) preprocessFrontMatter(baseDir string) (int, error) {
	if len(doc.lines) == 0 || !strings.HasPrefix(doc.lines[0], "---") {
		doc.log.Debugln("no YAML front matter found")
		return 0, nil
	}

	// Build a string with all lines up to the next "---"
	var currentLineNum int
	var yamlString strings.Builder
	for currentLineNum = 1; currentLineNum < len(doc.lines); currentLineNum++ {
		if strings.HasPrefix(doc.lines[currentLineNum], "---") {
			currentLineNum++
			break
		}

		yamlString.WriteString(doc.lines[currentLineNum])
		yamlString.WriteString("\n")
	}

	y, err := yaml.ParseYaml(yamlString.String())
	if err != nil {
		doc.log.Debugw("malformed YAML front matter ignored", "error", err)
		return currentLineNum, nil
	}

	if err := doc.Config.applyYAML(y, baseDir); err != nil {
		return 0, err
	}
	return currentLineNum, nil
}

// ToLaTeX runs the conversion and returns the complete document text. The
// same input and configuration always produce the same bytes.
func (doc *Document) ToLaTeX() string {
	doc.sb.Reset()
	doc.sb.WriteString(doc.Config.Preamble)
	doc.sb.WriteString("\\begin{document}\n")

	t := newTracker(doc.Config.IndentSize)
	var block *codeBlock

	for _, rawLine := range doc.lines[doc.start:] {

		// Inside a fenced code block nothing is interpreted until the
		// closing fence shows up.
		if block != nil {
			if strings.HasPrefix(strings.TrimLeft(rawLine, " "), "```") {
				doc.sb.WriteString(block.render(doc.Config.CodeStyle))
				block = nil
			} else {
				block.add(rawLine)
			}
			continue
		}

		indentation, line := preprocessLine(rawLine, doc.Config.Ignore)

		// An opening fence still closes the environments its indentation
		// owes, but emits nothing and touches no baseline.
		if strings.HasPrefix(line, "```") {
			doc.sb.WriteString(t.closeTo(indentation))
			block = startCodeBlock(indentation, line)
			continue
		}

		doc.sb.WriteString(t.processLine(indentation, line))
		doc.sb.WriteString("\n")
	}

	// An unterminated block is emitted anyway
	if block != nil {
		doc.sb.WriteString(block.render(doc.Config.CodeStyle))
	}

	doc.sb.WriteString(t.closeRemaining())
	doc.sb.WriteString("\n\\end{document}")

	doc.log.Debugw("conversion done",
		"lines", len(doc.lines)-doc.start,
		"opened", t.opens,
		"closed", t.closes,
		"sectionSeen", t.sectionSeen,
		"sectionIndent", t.sectionIndentation,
	)

	return doc.sb.String()
}

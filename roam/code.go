package roam

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeBlock accumulates the lines of one fenced code block until the closing
// fence arrives. The content is kept exactly as written, except that the
// indentation of the opening fence is removed from every line.
type codeBlock struct {
	indentation int
	language    string
	lines       []string
}

func startCodeBlock(indentation int, fenceLine string) *codeBlock {
	return &codeBlock{
		indentation: indentation,
		language:    strings.TrimSpace(strings.TrimPrefix(fenceLine, "```")),
	}
}

// add captures one raw line, removing at most the opening fence's
// indentation.
func (cb *codeBlock) add(rawLine string) {
	strip := 0
	for strip < cb.indentation && strip < len(rawLine) && rawLine[strip] == ' ' {
		strip++
	}
	cb.lines = append(cb.lines, rawLine[strip:])
}

// render emits the captured block as LaTeX. Blocks with a recognizable
// language are tokenized and colored with the configured chroma style inside
// a fancyvrb Verbatim environment; anything else becomes a plain verbatim
// block with its bytes untouched.
func (cb *codeBlock) render(styleName string) string {
	src := strings.Join(cb.lines, "\n")
	if len(cb.lines) > 0 {
		src += "\n"
	}

	l := cb.lexer(src)
	if l == nil {
		return "\\begin{verbatim}\n" + src + "\\end{verbatim}\n"
	}

	it, err := chroma.Coalesce(l).Tokenise(nil, src)
	if err != nil {
		return "\\begin{verbatim}\n" + src + "\\end{verbatim}\n"
	}

	var sb strings.Builder
	sb.WriteString("\\begin{Verbatim}[commandchars=\\\\\\{\\}]\n")
	formatTokens(&sb, styles.Get(styleName), it)
	sb.WriteString("\\end{Verbatim}\n")
	return sb.String()
}

// lexer resolves the language tag: exact name first, then content analysis.
// A block with no language tag or no usable lexer stays plain verbatim.
func (cb *codeBlock) lexer(src string) chroma.Lexer {
	if cb.language == "" {
		return nil
	}
	l := lexers.Get(cb.language)
	if l == nil {
		l = lexers.Analyse(src)
	}
	return l
}

// latexEscapes makes the three characters that stay active under
// commandchars=\\\{\} printable inside the Verbatim environment.
var latexEscapes = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
)

// formatTokens writes the token stream with the colour and weight the style
// assigns to each token type. Wrapping commands never span a newline, so the
// environment keeps its line structure.
func formatTokens(sb *strings.Builder, style *chroma.Style, it chroma.Iterator) {
	for t := it(); t != chroma.EOF; t = it() {
		entry := style.Get(t.Type)
		for i, part := range strings.Split(t.Value, "\n") {
			if i > 0 {
				sb.WriteString("\n")
			}
			if part == "" {
				continue
			}
			sb.WriteString(wrapToken(entry, latexEscapes.Replace(part)))
		}
	}
}

// wrapToken nests the styling commands around one escaped token fragment.
func wrapToken(entry chroma.StyleEntry, text string) string {
	if entry.Italic == chroma.Yes {
		text = `\textit{` + text + `}`
	}
	if entry.Bold == chroma.Yes {
		text = `\textbf{` + text + `}`
	}
	if entry.Colour.IsSet() {
		hex := strings.ToUpper(strings.TrimPrefix(entry.Colour.String(), "#"))
		text = `\textcolor[HTML]{` + hex + `}{` + text + `}`
	}
	return text
}

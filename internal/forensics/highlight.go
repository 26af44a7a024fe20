package forensics

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	diffLexerNameConstant         = "diff"
	terminalFormatterNameConstant = "terminal256"
	defaultHighlightStyleConstant = "monokai"
)

// Highlighter colorizes diffs and file content for 256-colour terminals.
// Any tokenizing or formatting failure yields the input unchanged.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter constructs a highlighter for the named chroma style.
// Unknown or empty style names fall back to chroma's default style.
func NewHighlighter(styleName string) *Highlighter {
	trimmedStyleName := strings.TrimSpace(styleName)
	if len(trimmedStyleName) == 0 {
		trimmedStyleName = defaultHighlightStyleConstant
	}
	style := styles.Get(trimmedStyleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get(terminalFormatterNameConstant)
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{style: style, formatter: formatter}
}

// HighlightDiff colorizes unified diff text.
func (highlighter *Highlighter) HighlightDiff(diffText string) string {
	return highlighter.highlight(lexers.Get(diffLexerNameConstant), diffText)
}

// HighlightFile colorizes content using the lexer matching filePath.
func (highlighter *Highlighter) HighlightFile(filePath string, content string) string {
	return highlighter.highlight(lexerForPath(filePath), content)
}

func (highlighter *Highlighter) highlight(lexer chroma.Lexer, text string) string {
	if highlighter == nil || lexer == nil || len(text) == 0 {
		return text
	}
	iterator, tokeniseError := lexer.Tokenise(nil, text)
	if tokeniseError != nil {
		return text
	}
	var builder strings.Builder
	if formatError := highlighter.formatter.Format(&builder, highlighter.style, iterator); formatError != nil {
		return text
	}
	return strings.TrimRight(builder.String(), "\n")
}

func lexerForPath(filePath string) chroma.Lexer {
	if len(filePath) == 0 {
		return nil
	}
	lexer := lexers.Match(filePath)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

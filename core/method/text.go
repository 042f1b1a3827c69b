package method

import (
	"regexp"
	"strings"

	"github.com/rncdiscover/rnc/schema"
)

// businessTextPatterns are searched in the raw body once it has at least two code lines.
var businessTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(if|else|for|while|do|switch|case)\b`),
	regexp.MustCompile(`query\s*\(`),
	regexp.MustCompile(`execute\s*\(`),
	regexp.MustCompile(`save\s*\(`),
	regexp.MustCompile(`delete\s*\(`),
	regexp.MustCompile(`\.add\s*\(`),
	regexp.MustCompile(`\.remove\s*\(`),
	regexp.MustCompile(`\.set\s*\(`),
	regexp.MustCompile(`\.put\s*\(`),
	regexp.MustCompile(`\bthrow\b`),
	regexp.MustCompile(`catch\s*\(`),
	regexp.MustCompile(`\breturn\b[^;]*[\w)\]]\s*[-+*/%]\s*[\w(]`),
	regexp.MustCompile(`\.compareTo\s*\(`),
	regexp.MustCompile(`\.equals\s*\(`),
	regexp.MustCompile(`\.contains\s*\(`),
}

const minCodeLines = 2

// TextClassifier applies line and keyword heuristics to the raw body source.
type TextClassifier struct{}

// NewTextClassifier creates a TextClassifier.
func NewTextClassifier() *TextClassifier {
	return &TextClassifier{}
}

// Name returns the strategy label.
func (c *TextClassifier) Name() schema.ClassifierStrategy {
	return schema.TextStrategy
}

// Classify implements Classifier.
func (c *TextClassifier) Classify(m schema.Method) bool {
	if excluded(m) {
		return false
	}
	body := innerBody(m.BodyText)
	if CountCodeLines(body) < minCodeLines {
		return false
	}
	for _, p := range businessTextPatterns {
		if p.MatchString(body) {
			return true
		}
	}
	return false
}

// CountCodeLines counts lines that are neither blank nor comment-only.
func CountCodeLines(body string) int {
	count := 0
	inBlock := false
	for _, line := range strings.Split(body, "\n") {
		var code string
		code, inBlock = stripComments(line, inBlock)
		if strings.TrimSpace(code) != "" {
			count++
		}
	}
	return count
}

// stripComments removes comment text from one line. inBlock reports whether the
// line starts inside a block comment; the result reports whether it ends inside one.
func stripComments(line string, inBlock bool) (string, bool) {
	var code strings.Builder
	for {
		if inBlock {
			end := strings.Index(line, "*/")
			if end < 0 {
				return code.String(), true
			}
			line, inBlock = line[end+2:], false
		}
		block := strings.Index(line, "/*")
		lineComment := strings.Index(line, "//")
		if lineComment >= 0 && (block < 0 || lineComment < block) {
			code.WriteString(line[:lineComment])
			return code.String(), false
		}
		if block < 0 {
			code.WriteString(line)
			return code.String(), false
		}
		code.WriteString(line[:block])
		line, inBlock = line[block+2:], true
	}
}

// innerBody drops the enclosing braces of a method body.
func innerBody(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text[1 : len(text)-1]
	}
	return text
}

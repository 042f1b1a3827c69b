package method

import (
	"github.com/rncdiscover/rnc/schema"
)

// TreeClassifier inspects the top-level statements of a parsed body.
// When no usable tree exists it defers to the text rules.
type TreeClassifier struct {
	thresholds schema.Thresholds
	fallback   *TextClassifier
}

// NewTreeClassifier creates a TreeClassifier with the given thresholds.
func NewTreeClassifier(thresholds schema.Thresholds) *TreeClassifier {
	return &TreeClassifier{thresholds: thresholds, fallback: NewTextClassifier()}
}

// Name returns the strategy label.
func (c *TreeClassifier) Name() schema.ClassifierStrategy {
	return schema.TreeStrategy
}

// Classify implements Classifier.
func (c *TreeClassifier) Classify(m schema.Method) bool {
	if excluded(m) {
		return false
	}
	if verdict, ok := c.inspect(m.Body); ok {
		return verdict
	}
	return c.fallback.Classify(m)
}

// inspect returns ok=false when the tree is missing, faulty or cannot be walked.
func (c *TreeClassifier) inspect(body *schema.StatementTree) (verdict, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			verdict, ok = false, false
		}
	}()
	if body == nil || body.Faulty {
		return false, false
	}

	locals, returns := 0, 0
	for _, kind := range body.Statements {
		switch {
		case kind.IsControlFlow(), kind == schema.ThrowStatement:
			return true, true
		case kind == schema.LocalDeclStatement:
			locals++
		case kind == schema.ReturnStatement:
			returns++
		}
	}
	return c.decide(locals, returns, body.Size()), true
}

func (c *TreeClassifier) decide(locals, returns, size int) bool {
	t := c.thresholds
	switch {
	case locals >= t.MinLocals && returns >= t.MinReturns:
		return true
	case size > t.LargeBody:
		return true
	case locals >= t.MediumLocals && returns >= t.MinReturns && size > t.MediumBody:
		return true
	}
	return false
}

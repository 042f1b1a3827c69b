// Package method decides whether a method declaration likely encodes business rules.
package method

import (
	"fmt"
	"strings"

	"github.com/rncdiscover/rnc/schema"
)

// Classifier decides the business-rule verdict for a single method.
type Classifier interface {
	Classify(m schema.Method) bool
	Name() schema.ClassifierStrategy
}

// accessorPrefixes exclude getters, setters and boolean accessors in every strategy.
var accessorPrefixes = []string{"get", "set", "is"}

// New builds the classifier for a strategy.
func New(strategy schema.ClassifierStrategy, thresholds schema.Thresholds) (Classifier, error) {
	switch strategy {
	case schema.TreeStrategy:
		return NewTreeClassifier(thresholds), nil
	case schema.TextStrategy:
		return NewTextClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier strategy %q", strategy)
	}
}

// excluded covers the rules shared by all strategies: no body, or an accessor name.
func excluded(m schema.Method) bool {
	if !m.HasBody {
		return true
	}
	for _, prefix := range accessorPrefixes {
		if strings.HasPrefix(m.Name, prefix) {
			return true
		}
	}
	return false
}

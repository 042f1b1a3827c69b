package match

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/rncdiscover/rnc/schema"
	"gopkg.in/yaml.v3"
)

type hintRule struct {
	category schema.HintCategory
	pattern  *regexp.Regexp
}

// hintRules are checked in this order; a file lists each category once.
var hintRules = []hintRule{
	{schema.JDBCURLHint, regexp.MustCompile(`(?i)jdbc[:/]?.*url|jdbc:|spring.datasource.url`)},
	{schema.ORMDialectHint, regexp.MustCompile(`(?i)hibernate\.dialect`)},
	{schema.DatasourceHint, regexp.MustCompile(`(?i)spring\.datasource`)},
}

// ScanDatabaseHints returns the hint categories found in a configuration file.
// YAML documents are also matched on their flattened dotted keys, so nested
// spring/datasource/url blocks are detected. A YAML decode error only disables
// the key pass; the raw text is still scanned.
func ScanDatabaseHints(name, content string) ([]schema.HintCategory, error) {
	texts := []string{content}
	var decodeErr error
	if IsYAML(name) {
		keys, err := FlattenYAMLKeys(content)
		if err != nil {
			decodeErr = fmt.Errorf("decode yaml %s: %w", name, err)
		} else if len(keys) > 0 {
			texts = append(texts, strings.Join(keys, "\n"))
		}
	}

	var found []schema.HintCategory
	for _, rule := range hintRules {
		for _, text := range texts {
			if rule.pattern.MatchString(text) {
				found = append(found, rule.category)
				break
			}
		}
	}
	return found, decodeErr
}

// FlattenYAMLKeys decodes every document in content and returns the dotted
// key path of every mapping entry, sorted.
func FlattenYAMLKeys(content string) ([]string, error) {
	dec := yaml.NewDecoder(strings.NewReader(content))
	seen := make(map[string]struct{})
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		collectKeys(&node, "", seen)
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func collectKeys(node *yaml.Node, prefix string, seen map[string]struct{}) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			collectKeys(child, prefix, seen)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			seen[key] = struct{}{}
			collectKeys(node.Content[i+1], key, seen)
		}
	}
}

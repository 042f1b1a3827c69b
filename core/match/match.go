// Package match classifies project files by fixed textual patterns.
package match

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// Role is the outcome of pattern classification for one source file.
type Role int

// Pattern classification outcomes.
const (
	NoRole Role = iota
	EntityRole
	BusinessRole
)

// EntityPatterns mark persistence entities.
var EntityPatterns = compileAll(
	`@Entity\b`,
	`@Table\b`,
)

// BusinessPatterns mark controllers, services and managed beans.
var BusinessPatterns = compileAll(
	`@Named\b`,
	`@Controller\b`,
	`@Service\b`,
	`@RestController\b`,
	`@ManagedBean\b`,
	`extends.*Controller\b`,
)

var (
	classNamePattern = regexp.MustCompile(`\b(?:class|record)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	tableNamePattern = regexp.MustCompile(`@Table\s*\([^)]*\bname\s*=\s*"([^"]+)"`)
)

// File extensions recognized by the traversal.
var (
	javaExtension    = ".java"
	viewExtensions   = []string{".xhtml", ".jsf"}
	configExtensions = []string{".properties", ".xml", ".yml", ".yaml"}
)

func compileAll(sources ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(sources))
	for i, s := range sources {
		out[i] = regexp.MustCompile(s)
	}
	return out
}

// MatchPatterns returns the sources of the patterns found anywhere in content, in list order.
func MatchPatterns(content string, patterns []*regexp.Regexp) []string {
	var found []string
	for _, p := range patterns {
		if p.MatchString(content) {
			found = append(found, p.String())
		}
	}
	return found
}

// ClassifySource applies the entity list, then the business list only when no entity pattern matched.
func ClassifySource(content string) (Role, []string) {
	if found := MatchPatterns(content, EntityPatterns); len(found) > 0 {
		return EntityRole, found
	}
	if found := MatchPatterns(content, BusinessPatterns); len(found) > 0 {
		return BusinessRole, found
	}
	return NoRole, nil
}

// EntityNames extracts the first declared class name and its table name.
// The table name comes from @Table(name = "...") or is inferred as the plural snake_case class name.
func EntityNames(content string) (className, tableName string) {
	if m := classNamePattern.FindStringSubmatch(content); m != nil {
		className = m[1]
	}
	if m := tableNamePattern.FindStringSubmatch(content); m != nil {
		return className, m[1]
	}
	if className == "" {
		return "", ""
	}
	return className, inflection.Plural(snakeCase(className))
}

func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsJavaSource reports whether the file name is a Java source file.
func IsJavaSource(name string) bool {
	return strings.HasSuffix(name, javaExtension)
}

// IsViewPage reports whether the file name is a JSF view template.
func IsViewPage(name string) bool {
	return hasAnySuffix(name, viewExtensions)
}

// IsConfigFile reports whether the file name may carry database configuration.
func IsConfigFile(name string) bool {
	return hasAnySuffix(name, configExtensions)
}

// IsYAML reports whether the file name is a YAML document.
func IsYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

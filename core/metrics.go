package core

import (
	"github.com/rncdiscover/rnc/core/method"
	"github.com/rncdiscover/rnc/schema"
)

// BuildClassMetrics turns the declarations of one file into metrics records.
// Only public methods are counted and types without any are dropped.
// Records follow declaration order, outer types first.
func BuildClassMetrics(path, rel string, decls []schema.TypeDecl, classifier method.Classifier) []schema.ClassBusinessMetrics {
	var records []schema.ClassBusinessMetrics
	for _, decl := range decls {
		m := schema.ClassBusinessMetrics{
			ClassName:           decl.Name,
			FilePath:            path,
			RelPath:             rel,
			Role:                schema.RoleForClassName(decl.Name),
			BusinessMethodNames: []string{},
		}
		for _, meth := range decl.Methods {
			if !meth.IsPublic() {
				continue
			}
			m.PublicMethods++
			if classifier.Classify(meth) {
				m.BusinessMethods++
				m.BusinessMethodNames = append(m.BusinessMethodNames, meth.Name)
			}
		}
		if m.PublicMethods == 0 {
			continue
		}
		records = append(records, m)
	}
	return records
}

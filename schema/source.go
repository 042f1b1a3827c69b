package schema

// StatementKind classifies a top-level statement of a method body.
type StatementKind string

// All statement kinds the classifier distinguishes.
const (
	ConditionalStatement StatementKind = "conditional"
	LoopStatement        StatementKind = "loop"
	SwitchStatement      StatementKind = "switch"
	TryStatement         StatementKind = "try"
	ThrowStatement       StatementKind = "throw"
	LocalDeclStatement   StatementKind = "local_declaration"
	ReturnStatement      StatementKind = "return"
	OtherStatement       StatementKind = "other"
)

// IsControlFlow reports whether the kind is a conditional, loop, switch or try construct.
func (k StatementKind) IsControlFlow() bool {
	switch k {
	case ConditionalStatement, LoopStatement, SwitchStatement, TryStatement:
		return true
	}
	return false
}

// StatementTree is the parsed form of a method body, reduced to what the classifier needs.
type StatementTree struct {
	Statements []StatementKind // Top-level statements in source order
	Text       string          // Textual form of the whole body structure
	Faulty     bool            // The parser recovered from errors inside the body
}

// Size is the length of the body's textual tree form, used as a size proxy.
func (t *StatementTree) Size() int {
	if t == nil {
		return 0
	}
	return len(t.Text)
}

// Method is one method declaration as seen by the classifier.
type Method struct {
	Name      string
	Modifiers []string
	HasBody   bool
	Body      *StatementTree // nil when no statement tree is available
	BodyText  string         // Raw source of the body, braces included
}

// IsPublic reports whether the method carries the public modifier.
func (m Method) IsPublic() bool {
	for _, mod := range m.Modifiers {
		if mod == "public" {
			return true
		}
	}
	return false
}

// TypeDecl is a declared class or interface with its methods in declaration order.
type TypeDecl struct {
	Name        string
	IsInterface bool
	Methods     []Method
}

// Thresholds are the numeric policy constants of the statement-tree rules.
type Thresholds struct {
	MinLocals    int `mapstructure:"min-locals" json:"min_locals" yaml:"min_locals"`          // Local declarations that, with a return, mark business logic
	MinReturns   int `mapstructure:"min-returns" json:"min_returns" yaml:"min_returns"`       // Returns required by both local-declaration rules
	LargeBody    int `mapstructure:"large-body" json:"large_body" yaml:"large_body"`          // Body size above which a method is business logic
	MediumLocals int `mapstructure:"medium-locals" json:"medium_locals" yaml:"medium_locals"` // Local declarations for the medium-size rule
	MediumBody   int `mapstructure:"medium-body" json:"medium_body" yaml:"medium_body"`       // Body size above which the medium rule applies
}

// DefaultThresholds returns the stock policy: 3 locals, 1 return, 1000 chars, 2 locals, 500 chars.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinLocals:    3,
		MinReturns:   1,
		LargeBody:    1000,
		MediumLocals: 2,
		MediumBody:   500,
	}
}

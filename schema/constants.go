package schema

// Custom string types for type safety.
type (
	// Role represents the coarse role of a class derived from its name.
	Role string

	// HintCategory represents a kind of database configuration signal.
	HintCategory string

	// SummaryMode represents the format of the stdout summary.
	SummaryMode string

	// ClassifierStrategy represents the method classification strategy.
	ClassifierStrategy string

	// FileKind represents how a file takes part in discovery.
	FileKind string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All class roles, in matching precedence order.
const (
	ControllerRole     Role = "Controller"
	ServiceRole        Role = "Service"
	RepositoryRole     Role = "Repository"
	ImplementationRole Role = "Implementation"
	GenericRole        Role = "Generic"
)

// RolePrecedence lists the roles that are matched by class-name substring, first match wins.
var RolePrecedence = []Role{ControllerRole, ServiceRole, RepositoryRole, ImplementationRole}

// All database hint categories.
const (
	JDBCURLHint    HintCategory = "jdbc_url"
	ORMDialectHint HintCategory = "orm_dialect"
	DatasourceHint HintCategory = "datasource"
)

// All summary modes supported.
const (
	TextSummary SummaryMode = "text" // default
	JSONSummary SummaryMode = "json"
	YAMLSummary SummaryMode = "yaml"
)

// All classifier strategies supported.
const (
	TreeStrategy ClassifierStrategy = "tree" // default
	TextStrategy ClassifierStrategy = "text"
)

// All file kinds recognized during the traversal.
const (
	JavaFile   FileKind = "java"
	ViewFile   FileKind = "view"
	ConfigFile FileKind = "config"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ValidSummaryModes lists all valid summary modes.
var ValidSummaryModes = map[SummaryMode]struct{}{
	TextSummary: {},
	JSONSummary: {},
	YAMLSummary: {},
}

// ValidClassifierStrategies lists all valid classifier strategies.
var ValidClassifierStrategies = map[ClassifierStrategy]struct{}{
	TreeStrategy: {},
	TextStrategy: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Report naming and placement.
const (
	OutputFolder = "output"
	ReportPrefix = "rnc-"
)

// NoDatabaseHints is the summary text used when no configuration file carries a database hint.
const NoDatabaseHints = "No common database configuration files were found (.properties, .xml, .yml, .yaml)."

// DatabaseHintsHeading opens the summary text when at least one hint was found.
const DatabaseHintsHeading = "### Database Configuration Files Found"

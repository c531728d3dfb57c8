package model

// Severity represents how strongly a smell suggests a design problem.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo marks stylistic smells that rarely need action.
	// Examples: boolean parameters.
	SeverityInfo Severity = iota

	// SeverityLow marks naming problems that hurt readability only.
	// Examples: uncommunicative parameter, variable and method names.
	SeverityLow

	// SeverityMedium marks smells that make code harder to change.
	// Examples: duplicated calls, long parameter lists, nested iterators.
	SeverityMedium

	// SeverityHigh marks structural problems with responsibilities.
	// Examples: feature envy, utility functions, oversized types.
	SeverityHigh
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Severities lists every level from most to least severe.
func Severities() []Severity {
	return []Severity{SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// SmellInfo contains metadata about a smell type: how severe it is and
// how to address it.
type SmellInfo struct {
	Severity       Severity
	Summary        string
	Recommendation string
}

// smellInfoMapping maps smell types to their metadata.
// This centralized mapping keeps report output consistent across formats.
var smellInfoMapping = map[string]SmellInfo{
	"FeatureEnvy": {
		Severity:       SeverityHigh,
		Summary:        "A method uses another value's data more than its own receiver's.",
		Recommendation: "Move the behaviour to the type whose data it uses.",
	},
	"UtilityFunction": {
		Severity:       SeverityHigh,
		Summary:        "A method never touches its receiver.",
		Recommendation: "Turn it into a plain function or move it to the type it works on.",
	},
	"TooManyMethods": {
		Severity:       SeverityHigh,
		Summary:        "A type declares more methods than the configured limit.",
		Recommendation: "Split the type along its responsibilities.",
	},
	"TooManyStatements": {
		Severity:       SeverityMedium,
		Summary:        "A function contains more statements than the configured limit.",
		Recommendation: "Extract helpers for the separate steps.",
	},
	"LongParameterList": {
		Severity:       SeverityMedium,
		Summary:        "A function takes more parameters than the configured limit.",
		Recommendation: "Group related parameters into a struct or use functional options.",
	},
	"DuplicateMethodCall": {
		Severity:       SeverityMedium,
		Summary:        "The same call expression is repeated within one function.",
		Recommendation: "Call it once and keep the result in a local variable.",
	},
	"NestedIterators": {
		Severity:       SeverityMedium,
		Summary:        "Loops are nested deeper than the configured limit.",
		Recommendation: "Extract the inner loop into its own function.",
	},
	"UncommunicativeParameterName": {
		Severity:       SeverityLow,
		Summary:        "A parameter name does not say what it holds.",
		Recommendation: "Rename the parameter after its role.",
	},
	"UncommunicativeVariableName": {
		Severity:       SeverityLow,
		Summary:        "A local variable name does not say what it holds.",
		Recommendation: "Rename the variable after its role.",
	},
	"UncommunicativeMethodName": {
		Severity:       SeverityLow,
		Summary:        "A function name does not say what it does.",
		Recommendation: "Rename the function after its behaviour.",
	},
	"BooleanParameter": {
		Severity:       SeverityInfo,
		Summary:        "A bool parameter switches the function's behaviour.",
		Recommendation: "Split the function in two or pass a named option type.",
	},
}

// GetSeverity returns the severity for a smell type.
// Unknown smell types are treated as informational.
func GetSeverity(smellType string) Severity {
	if info, ok := smellInfoMapping[smellType]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetSmellInfo returns the metadata for a smell type.
func GetSmellInfo(smellType string) SmellInfo {
	if info, ok := smellInfoMapping[smellType]; ok {
		return info
	}
	return SmellInfo{Severity: SeverityInfo}
}

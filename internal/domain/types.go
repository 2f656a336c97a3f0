// Package domain contains the core clinical entities used by the CDSS
// evaluation core: the patient snapshot, guideline rule and finding records,
// and the drug interaction result types.
//
// Severity grading follows the four-level drug interaction taxonomy
// (minor/moderate/major/contraindicated) used by the ANSM interaction
// thesaurus and most commercial compendia.
package domain

import "errors"

// Sex is the administrative sex used by clearance and dosing formulas.
type Sex string

const (
	MALE   Sex = "male"
	FEMALE Sex = "female"
)

// IsValid reports whether the value is one of the supported sexes.
func (s Sex) IsValid() bool {
	return s == MALE || s == FEMALE
}

// String returns the string representation.
func (s Sex) String() string {
	return string(s)
}

// Module identifies the clinical module a rule belongs to. An empty Module
// on a rule means the rule applies to every patient.
type Module string

const (
	ModuleDialysis      Module = "dialyse"
	ModuleCardiology    Module = "cardiology"
	ModuleOphthalmology Module = "ophthalmology"
	ModuleGeneral       Module = "general"
)

// AllModules lists every valid module filter value in a stable order, used
// when building validation error messages.
var AllModules = []Module{ModuleDialysis, ModuleCardiology, ModuleOphthalmology, ModuleGeneral}

// IsValid reports whether the module name is one of the known modules.
func (m Module) IsValid() bool {
	switch m {
	case ModuleDialysis, ModuleCardiology, ModuleOphthalmology, ModuleGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Module) String() string {
	return string(m)
}

// Severity grades an interaction or contraindication finding.
type Severity string

const (
	SeverityMinor           Severity = "minor"
	SeverityModerate        Severity = "moderate"
	SeverityMajor           Severity = "major"
	SeverityContraindicated Severity = "contraindicated"
)

var severityRank = map[Severity]int{
	SeverityMinor:           1,
	SeverityModerate:        2,
	SeverityMajor:           3,
	SeverityContraindicated: 4,
}

// IsValid reports whether the severity is one of the four grades.
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the ordinal weight of the severity, higher meaning more
// severe. Unknown severities rank below minor.
func (s Severity) Rank() int {
	return severityRank[s]
}

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}

// Sentinel errors shared across the core.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidModule = errors.New("invalid clinical module")
)

package catalog

import (
	"sort"
	"strings"

	"github.com/cdss-core/internal/domain"
)

// InteractionRule is one pairwise or drug-to-class interaction entry.
// Matching is symmetric: (A,B) and (B,A) are the same interaction. When
// ClassB is set the entry matches DrugA against any member of that class.
type InteractionRule struct {
	DrugA      string
	DrugB      string
	ClassB     string
	Severity   domain.Severity
	Mechanism  string
	Management string
	Source     string
}

// ContraindicationRule forbids a drug (or a whole class) for patients with
// a given condition or substance allergy.
type ContraindicationRule struct {
	Drug               string // exact drug, or empty when Class is set
	Class              string // drug class, or empty when Drug is set
	ConditionOrAllergy string
	Severity           domain.Severity
	Rationale          string
	Source             string
}

// RenalDoseRule is one row of the renal dose-adjustment table. Bands are
// half-open eGFR intervals; the dialysis dose takes precedence over any
// eGFR value.
type RenalDoseRule struct {
	Drug        string
	NormalDose  string
	EGFR30to59  string
	EGFR15to29  string
	EGFRBelow15 string
	Dialysis    string
}

// DrugCatalog is the static drug reference data: interactions,
// contraindications, renal dosing, class membership, and brand/generic
// aliases. Read-only after construction; all name lookup is case-folded.
type DrugCatalog struct {
	interactions      []InteractionRule
	contraindications []ContraindicationRule
	renalDosing       map[string]RenalDoseRule
	classes           []domain.ClassReference
	classMembers      map[string]map[string]bool // class -> member set
	memberClasses     map[string][]string        // drug -> classes, in class declaration order
	aliases           map[string]string          // brand -> generic
}

// NewDrugCatalog builds a catalog from its raw tables. Class names, members
// and aliases are folded to lower case once here so every later lookup is a
// plain map hit.
func NewDrugCatalog(
	interactions []InteractionRule,
	contraindications []ContraindicationRule,
	dosing []RenalDoseRule,
	classes []domain.ClassReference,
	aliases map[string]string,
) *DrugCatalog {
	c := &DrugCatalog{
		interactions:      interactions,
		contraindications: contraindications,
		renalDosing:       make(map[string]RenalDoseRule, len(dosing)),
		classMembers:      make(map[string]map[string]bool, len(classes)),
		memberClasses:     make(map[string][]string),
		aliases:           make(map[string]string, len(aliases)),
	}

	for _, d := range dosing {
		c.renalDosing[fold(d.Drug)] = d
	}

	for _, class := range classes {
		name := fold(class.Name)
		members := make(map[string]bool, len(class.Members))
		folded := make([]string, 0, len(class.Members))
		for _, m := range class.Members {
			fm := fold(m)
			members[fm] = true
			folded = append(folded, fm)
			c.memberClasses[fm] = append(c.memberClasses[fm], name)
		}
		c.classMembers[name] = members
		c.classes = append(c.classes, domain.ClassReference{Name: name, Members: folded})
	}

	for brand, generic := range aliases {
		c.aliases[fold(brand)] = fold(generic)
	}

	return c
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve normalizes a drug name to the generic name the catalog tables are
// keyed by: case-folded, then alias-resolved. The boolean reports whether
// the catalog has any data at all for the resolved name (interaction,
// contraindication, dosing or class membership).
func (c *DrugCatalog) Resolve(name string) (string, bool) {
	resolved := fold(name)
	if generic, ok := c.aliases[resolved]; ok {
		resolved = generic
	}
	return resolved, c.isKnown(resolved)
}

func (c *DrugCatalog) isKnown(drug string) bool {
	if _, ok := c.renalDosing[drug]; ok {
		return true
	}
	if _, ok := c.memberClasses[drug]; ok {
		return true
	}
	for _, ir := range c.interactions {
		if fold(ir.DrugA) == drug || fold(ir.DrugB) == drug {
			return true
		}
	}
	for _, cr := range c.contraindications {
		if fold(cr.Drug) == drug {
			return true
		}
	}
	return false
}

// InClass reports whether the (resolved) drug belongs to the named class.
func (c *DrugCatalog) InClass(drug, class string) bool {
	members, ok := c.classMembers[fold(class)]
	return ok && members[fold(drug)]
}

// ClassesOf returns the classes the (resolved) drug belongs to.
func (c *DrugCatalog) ClassesOf(drug string) []string {
	return c.memberClasses[fold(drug)]
}

// FindInteraction returns the interaction entries matching the unordered
// pair of resolved drug names, via direct or class-level match.
func (c *DrugCatalog) FindInteraction(drugA, drugB string) []InteractionRule {
	a, b := fold(drugA), fold(drugB)
	if a == b {
		return nil
	}

	var matches []InteractionRule
	for _, rule := range c.interactions {
		ra := fold(rule.DrugA)
		switch {
		case rule.ClassB != "":
			// Direct drug against class, either orientation.
			if (ra == a && c.InClass(b, rule.ClassB)) || (ra == b && c.InClass(a, rule.ClassB)) {
				matches = append(matches, rule)
			}
		default:
			rb := fold(rule.DrugB)
			if (ra == a && rb == b) || (ra == b && rb == a) {
				matches = append(matches, rule)
			}
		}
	}
	return matches
}

// FindContraindications returns the contraindication entries matching a
// resolved drug against one condition or allergy identifier. Class-level
// entries match any drug in the class; the identifier itself is matched by
// case-insensitive substring, since condition lists are free text.
func (c *DrugCatalog) FindContraindications(drug, conditionOrAllergy string) []ContraindicationRule {
	d := fold(drug)
	subject := fold(conditionOrAllergy)
	if subject == "" {
		return nil
	}

	var matches []ContraindicationRule
	for _, rule := range c.contraindications {
		drugMatch := false
		if rule.Drug != "" {
			drugMatch = fold(rule.Drug) == d
		} else if rule.Class != "" {
			drugMatch = c.InClass(d, rule.Class)
		}
		if !drugMatch {
			continue
		}
		if strings.Contains(subject, fold(rule.ConditionOrAllergy)) ||
			strings.Contains(fold(rule.ConditionOrAllergy), subject) {
			matches = append(matches, rule)
		}
	}
	return matches
}

// DoseRule returns the renal dosing row for a resolved drug name.
func (c *DrugCatalog) DoseRule(drug string) (RenalDoseRule, bool) {
	rule, ok := c.renalDosing[fold(drug)]
	return rule, ok
}

// Classes returns the class references, folded, in declaration order.
func (c *DrugCatalog) Classes() []domain.ClassReference {
	out := make([]domain.ClassReference, len(c.classes))
	copy(out, c.classes)
	return out
}

// Version is a content fingerprint of the catalog tables, for cache keying
// alongside the rule catalog version.
func (c *DrugCatalog) Version() string {
	var b strings.Builder
	for _, ir := range c.interactions {
		b.WriteString(ir.DrugA)
		b.WriteString(ir.DrugB)
		b.WriteString(ir.ClassB)
		b.WriteString(string(ir.Severity))
	}
	for _, cr := range c.contraindications {
		b.WriteString(cr.Drug)
		b.WriteString(cr.Class)
		b.WriteString(cr.ConditionOrAllergy)
	}
	dosed := make([]string, 0, len(c.renalDosing))
	for drug := range c.renalDosing {
		dosed = append(dosed, drug)
	}
	sort.Strings(dosed)
	for _, drug := range dosed {
		b.WriteString(drug)
	}
	return shortHash(b.String())
}

package memory

import (
	"regexp"
	"slices"
	"strings"

	"quote-service/internal/models"
)

type categoryRule struct {
	category models.FactCategory
	keywords []string
}

// Rules are checked in order and the first match wins. A fact naming both a
// tractor make and its age is a type fact.
var categoryRules = []categoryRule{
	{models.FactTractorType, []string{
		"farm tractor", "vintage tractor", "compact tractor", "utility tractor", "mini tractor",
		"garden tractor", "ride-on", "mower", "john deere", "massey ferguson", "kubota",
		"new holland", "fordson", "tractor type",
	}},
	{models.FactTractorName, []string{"named", "tractor's name", "called", "my tractor", "registration"}},
	{models.FactTractorAge, []string{"year old", "years old", "new tractor", "vintage", "age", "manufactured"}},
	{models.FactCondition, []string{"condition", "repair", "damage", "breakdown", "engine", "hydraulic", "mechanical", "maintenance"}},
	{models.FactInsurance, []string{"plan", "coverage", "premium", "quote", "basic", "standard", "comprehensive", "deductible"}},
}

func Categorize(fact string) models.FactCategory {
	lower := strings.ToLower(fact)
	for _, rule := range categoryRules {
		if slices.ContainsFunc(rule.keywords, func(k string) bool { return strings.Contains(lower, k) }) {
			return rule.category
		}
	}
	return models.FactGeneric
}

var (
	subjectPrefix = regexp.MustCompile(`(?i)^(the user |user |they |he |she |their tractor )`)
	verbPrefix    = regexp.MustCompile(`(?i)^(is a |is an |is |are |has a |has an |has |have a |have an |have |wants |prefers )`)
)

// CleanFact removes at most one subject prefix and then at most one verb prefix.
func CleanFact(fact string) string {
	out := subjectPrefix.ReplaceAllString(fact, "")
	out = verbPrefix.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

type contextSection struct {
	category models.FactCategory
	label    string
}

var contextSections = []contextSection{
	{models.FactTractorType, "Tractor Type"},
	{models.FactTractorName, "Tractor Name"},
	{models.FactTractorAge, "Tractor Age"},
	{models.FactCondition, "Condition Notes"},
	{models.FactInsurance, "Insurance Interest"},
}

// BuildContext categorizes raw facts, keeps the first occurrence of each cleaned
// fact per category and renders one summary line per non-empty category.
// Generic facts are listed but never summarized.
func BuildContext(rawFacts []string) models.MemoryContext {
	result := models.EmptyMemoryContext()

	for _, raw := range rawFacts {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		category := Categorize(raw)
		clean := CleanFact(raw)
		result.Facts = append(result.Facts, models.CategorizedFact{Fact: raw, Type: category, Clean: clean})

		if bucket := entityBucket(&result.Entities, category); bucket != nil && !slices.Contains(*bucket, clean) {
			*bucket = append(*bucket, clean)
		}
	}

	lines := make([]string, 0, len(contextSections))
	for _, section := range contextSections {
		values := *entityBucket(&result.Entities, section.category)
		if len(values) == 0 {
			continue
		}
		lines = append(lines, section.label+": "+strings.Join(values, ", "))
	}
	result.Context = strings.Join(lines, "\n")

	return result
}

func entityBucket(e *models.Entities, category models.FactCategory) *[]string {
	switch category {
	case models.FactTractorType:
		return &e.Types
	case models.FactTractorName:
		return &e.Names
	case models.FactTractorAge:
		return &e.Ages
	case models.FactCondition:
		return &e.Conditions
	case models.FactInsurance:
		return &e.Insurance
	default:
		return nil
	}
}

package analysis

import (
	"sort"
	"strings"
)

// Category labels what a prompt asked for. A prompt can carry several.
type Category string

const (
	CategoryCode        Category = "code"
	CategoryExplanation Category = "explanation"
	CategoryDebugging   Category = "debugging"
	CategoryFeature     Category = "feature"
	CategoryRefactoring Category = "refactoring"
	CategoryGeneral     Category = "general"
)

// categoryIndicators maps each category to the case-insensitive
// substrings that trigger it. All matching categories apply; list order
// carries no priority.
var categoryIndicators = []struct {
	Category   Category
	Indicators []string
}{
	{CategoryCode, []string{
		"function", "class", "implement", "code", "bug", "fix", "error",
		"python", "javascript", "html", "css", "syntax",
	}},
	{CategoryExplanation, []string{
		"explain", "how does", "what is", "describe", "tell me about",
	}},
	{CategoryDebugging, []string{
		"debug", "fix", "error", "issue", "problem", "not working",
	}},
	{CategoryFeature, []string{
		"feature", "implement", "add", "create", "develop",
	}},
	{CategoryRefactoring, []string{
		"refactor", "improve", "optimize", "clean", "better",
	}},
}

// Categorize returns every category whose indicators appear in the text,
// sorted for stable output. Text matching nothing is "general".
func Categorize(text string) []Category {
	lower := strings.ToLower(text)

	var categories []Category
	for _, group := range categoryIndicators {
		for _, indicator := range group.Indicators {
			if strings.Contains(lower, indicator) {
				categories = append(categories, group.Category)
				break
			}
		}
	}

	if len(categories) == 0 {
		return []Category{CategoryGeneral}
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

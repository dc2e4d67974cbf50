package category

import (
	"sort"
	"strings"
)

// Rule routes media types that start with Label to Destination.
type Rule struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
}

// Matches reports whether the rule's label is a prefix of mediaType.
func (r Rule) Matches(mediaType string) bool {
	return mediaType != "" && strings.HasPrefix(mediaType, r.Label)
}

// Specific reports whether the label names a full type/subtype rather
// than a top-level type.
func (r Rule) Specific() bool {
	return strings.Contains(r.Label, "/")
}

// Rules returns the routing rules in evaluation order: labels naming a full
// type/subtype first, then top-level labels, each group in declaration
// order. Evaluation is first-match-wins, so "image/webp" is preferred over
// "image" for image/webp files.
func (t Table) Rules() []Rule {
	rules := make([]Rule, 0, len(t.categories))
	for _, c := range t.categories {
		rules = append(rules, Rule{Label: c.Label, Destination: c.Destination})
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Specific() && !rules[j].Specific()
	})
	return rules
}

// Match returns the first rule whose label prefixes mediaType.
func (t Table) Match(mediaType string) (Rule, bool) {
	for _, rule := range t.Rules() {
		if rule.Matches(mediaType) {
			return rule, true
		}
	}
	return Rule{}, false
}

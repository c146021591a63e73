// Package repair fixes the malformed t() wiring left by the first rewrite pass
package repair

import (
	"fmt"
	"regexp"
	"sort"
)

// Rule is a single regex substitution
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// Hit counts how often a rule fired
type Hit struct {
	Rule  string
	Count int
}

// RuleSet is an ordered list of rules with the files it targets by default
type RuleSet struct {
	Name  string
	Globs []string
	Rules []Rule
}

var sets = map[string]RuleSet{
	// {t("key")} written where an expression is expected
	"syntax": {
		Name: "syntax",
		Globs: []string{
			"src/pages/*.tsx",
			"src/pages/**/*.tsx",
			"src/components/**/*.tsx",
		},
		Rules: []Rule{
			{
				// { name: {t("key")} } -> { name: t("key") }
				Name:    "object-value",
				Pattern: regexp.MustCompile(`:\s*\{t\(`),
				Replace: `: t(`,
			},
			{
				// {isLoading ? 'text' : {t("key")}} -> {isLoading ? 'text' : t("key")}
				Name:    "ternary-else",
				Pattern: regexp.MustCompile(`\?\s*([^:]+)\s*:\s*\{t\(`),
				Replace: `? ${1} : t(`,
			},
			{
				Name:    "named-ternary-else",
				Pattern: regexp.MustCompile(`(\w+)\s*\?\s*([^:]+)\s*:\s*\{t\(`),
				Replace: `${1} ? ${2} : t(`,
			},
			{
				// text: {t("key")} -> text: t("key")
				Name:    "data-field",
				Pattern: regexp.MustCompile(`(text|label|name):\s*\{t\(`),
				Replace: `${1}: t(`,
			},
		},
	},
	// stray closing braces after t("key")
	"braces": {
		Name:  "braces",
		Globs: []string{"src/**/*.tsx", "src/**/*.ts"},
		Rules: []Rule{
			{
				// (toast.error({t("key") -> (toast.error(t("key")
				Name:    "call-argument",
				Pattern: regexp.MustCompile(`\(([\w.]+)\(\{t\(`),
				Replace: `(${1}(t(`,
			},
			{
				// label: t("key")} } -> label: t("key") }
				Name:    "object-close",
				Pattern: regexp.MustCompile(`t\("([^"]+)"\)\}\s*\}`),
				Replace: `t("${1}") }`,
			},
			{
				Name:    "object-close-comma",
				Pattern: regexp.MustCompile(`t\("([^"]+)"\)\}\s*\},`),
				Replace: `t("${1}") },`,
			},
			{
				// ? 'text' : t("key")}} -> ? 'text' : t("key")}
				Name:    "double-close",
				Pattern: regexp.MustCompile(`t\("([^"]+)"\)\}\}`),
				Replace: `t("${1}")}`,
			},
			{
				Name:    "trailing-close",
				Pattern: regexp.MustCompile(`t\("([^"]+)"\)\}([,\s])`),
				Replace: `t("${1}")${2}`,
			},
		},
	},
}

// Names returns the rule set names, sorted
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a rule set by name
func Get(name string) (RuleSet, error) {
	rs, ok := sets[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("unknown rule set: %s", name)
	}
	return rs, nil
}

// Apply runs every rule in order and reports the ones that fired
func (rs RuleSet) Apply(content string) (string, []Hit) {
	var hits []Hit
	for _, rule := range rs.Rules {
		n := len(rule.Pattern.FindAllStringIndex(content, -1))
		if n == 0 {
			continue
		}
		content = rule.Pattern.ReplaceAllString(content, rule.Replace)
		hits = append(hits, Hit{Rule: rule.Name, Count: n})
	}
	return content, hits
}

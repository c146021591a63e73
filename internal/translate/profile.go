package translate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Wrap styles for a replaced literal
const (
	// WrapExpression produces {t("key")}
	WrapExpression = "expression"
	// WrapCall produces t("key")
	WrapCall = "call"
)

// Import strategies
const (
	// ImportAfterReact inserts the import after the first "import React" line
	ImportAfterReact = "after-react"
	// ImportAfterLastImport inserts the import after the last import statement
	ImportAfterLastImport = "after-last-import"
	// ImportReplaceReact inserts the import right after the first "import React" token,
	// and only wires the hook when the import was added
	ImportReplaceReact = "replace-react"
)

// Component declaration patterns that receive the hook call
var hookPatterns = map[string]*regexp.Regexp{
	// const Page: React.FC<Props> = ({ a }) => {
	"react-fc": regexp.MustCompile(`const\s+\w+:\s*React\.FC[^=]*=\s*(?:\([^)]*\))?\s*=>\s*\{`),
	// const Page: React.FC = () => {
	"react-fc-noargs": regexp.MustCompile(`const\s+\w+:\s*React\.FC.*?=\s*\(\)\s*=>\s*\{`),
	// const Page = (props): JSX.Element => {
	"jsx-element": regexp.MustCompile(`const\s+\w+\s*=\s*\([^)]*\)\s*:\s*JSX\.Element\s*=>\s*\{`),
	// const Page = () => {
	"arrow": regexp.MustCompile(`const\s+\w+\s*=\s*\(\)\s*=>\s*\{`),
}

// HookPatternNames returns the known hook pattern names, sorted
func HookPatternNames() []string {
	names := make([]string, 0, len(hookPatterns))
	for name := range hookPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile describes one rewrite pass over a set of files
type Profile struct {
	Name       string   `mapstructure:"name" yaml:"name,omitempty"`
	Globs      []string `mapstructure:"globs" yaml:"globs,omitempty"`
	Dictionary string   `mapstructure:"dictionary" yaml:"dictionary,omitempty"`
	Quotes     []string `mapstructure:"quotes" yaml:"quotes,omitempty"`
	TextNodes  *bool    `mapstructure:"text_nodes" yaml:"text_nodes,omitempty"`
	Wrap       string   `mapstructure:"wrap" yaml:"wrap,omitempty"`
	Import     string   `mapstructure:"import" yaml:"import,omitempty"`
	Hooks      []string `mapstructure:"hooks" yaml:"hooks,omitempty"`
	// WireOnlyWithHits leaves a file untouched unless a phrase was replaced
	WireOnlyWithHits *bool `mapstructure:"wire_only_with_hits" yaml:"wire_only_with_hits,omitempty"`
}

// Validate checks the profile's enumerated fields
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is empty")
	}
	if p.Dictionary == "" {
		return fmt.Errorf("profile %s: dictionary is empty", p.Name)
	}
	if len(p.Globs) == 0 {
		return fmt.Errorf("profile %s: no globs", p.Name)
	}
	for _, q := range p.Quotes {
		if q != `"` && q != `'` {
			return fmt.Errorf("profile %s: unsupported quote %q", p.Name, q)
		}
	}
	switch p.Wrap {
	case WrapExpression, WrapCall:
	default:
		return fmt.Errorf("profile %s: unknown wrap style %q", p.Name, p.Wrap)
	}
	switch p.Import {
	case ImportAfterReact, ImportAfterLastImport, ImportReplaceReact:
	default:
		return fmt.Errorf("profile %s: unknown import strategy %q", p.Name, p.Import)
	}
	for _, h := range p.Hooks {
		if _, ok := hookPatterns[h]; !ok {
			return fmt.Errorf("profile %s: unknown hook pattern %q (known: %s)", p.Name, h, strings.Join(HookPatternNames(), ", "))
		}
	}
	return nil
}

// RewritesTextNodes reports whether >phrase< text nodes are rewritten
func (p Profile) RewritesTextNodes() bool {
	return p.TextNodes != nil && *p.TextNodes
}

// RequiresHits reports whether wiring alone is discarded when nothing was replaced
func (p Profile) RequiresHits() bool {
	return p.WireOnlyWithHits != nil && *p.WireOnlyWithHits
}

// Merge returns p with every non-empty field of override applied
func (p Profile) Merge(override Profile) Profile {
	if len(override.Globs) > 0 {
		p.Globs = override.Globs
	}
	if override.Dictionary != "" {
		p.Dictionary = override.Dictionary
	}
	if len(override.Quotes) > 0 {
		p.Quotes = override.Quotes
	}
	if override.TextNodes != nil {
		p.TextNodes = override.TextNodes
	}
	if override.WireOnlyWithHits != nil {
		p.WireOnlyWithHits = override.WireOnlyWithHits
	}
	if override.Wrap != "" {
		p.Wrap = override.Wrap
	}
	if override.Import != "" {
		p.Import = override.Import
	}
	if len(override.Hooks) > 0 {
		p.Hooks = override.Hooks
	}
	return p
}

func boolPtr(b bool) *bool {
	return &b
}

// DefaultProfileOrder is the order profiles run when none is named
var DefaultProfileOrder = []string{"member", "public", "components"}

// BuiltinProfiles returns the shipped profiles keyed by name
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		"member": {
			Name:       "member",
			Globs:      []string{"src/pages/member/*.tsx"},
			Dictionary: "member",
			Quotes:     []string{`"`, `'`},
			TextNodes:  boolPtr(true),
			Wrap:       WrapExpression,
			Import:     ImportAfterReact,
			Hooks:      []string{"react-fc"},
		},
		"public": {
			Name: "public",
			Globs: []string{
				"src/pages/*.tsx",
				"src/pages/auth/*.tsx",
				"src/pages/transactions/*.tsx",
				"src/pages/promotions/*.tsx",
				"src/pages/profile/*.tsx",
				"src/pages/games/*.tsx",
				"src/pages/lottery/*.tsx",
			},
			Dictionary: "public",
			Quotes:     []string{`"`, `'`},
			TextNodes:  boolPtr(true),
			Wrap:       WrapExpression,
			Import:     ImportAfterLastImport,
			Hooks:      []string{"react-fc", "jsx-element", "arrow"},
		},
		"components": {
			Name:       "components",
			Globs:      []string{"src/components/**/*.tsx"},
			Dictionary: "components",
			Quotes:     []string{`"`, `'`},
			TextNodes:  boolPtr(true),
			Wrap:       WrapExpression,
			Import:     ImportAfterLastImport,
			Hooks:      []string{"react-fc", "arrow"},
		},
		"files": {
			Name:       "files",
			Globs:      []string{"src/pages/member/*.tsx"},
			Dictionary: "files",
			Quotes:     []string{`"`},
			TextNodes:  boolPtr(false),
			Wrap:       WrapCall,
			Import:     ImportReplaceReact,
			Hooks:      []string{"react-fc-noargs"},

			WireOnlyWithHits: boolPtr(true),
		},
	}
}

// ResolveProfiles overlays configured overrides on the builtins.
// An override with an unknown name defines a new profile.
func ResolveProfiles(overrides map[string]Profile) (map[string]Profile, error) {
	profiles := BuiltinProfiles()
	for name, o := range overrides {
		base, ok := profiles[name]
		if !ok {
			base = Profile{Name: name, Quotes: []string{`"`, `'`}, Wrap: WrapExpression, Import: ImportAfterLastImport}
		}
		merged := base.Merge(o)
		merged.Name = name
		profiles[name] = merged
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// Package translate rewrites hard-coded Thai literals into t() lookups
package translate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yejune/thai-i18n/internal/dictionary"
)

// hookWindow is how far past a component declaration an existing hook is looked for
const hookWindow = 200

var (
	reactImportLine = regexp.MustCompile(`import React[^\n]*\n`)
	importLine      = regexp.MustCompile(`(?m)^import .*$`)
	importFromLine  = regexp.MustCompile(`\}\s*from\s+['"][^'"]+['"]`)
)

// Options names the lookup function and where it comes from
type Options struct {
	Function string `mapstructure:"function" yaml:"function"`
	Hook     string `mapstructure:"hook" yaml:"hook"`
	Module   string `mapstructure:"module" yaml:"module"`
}

// DefaultOptions wires react-i18next
func DefaultOptions() Options {
	return Options{
		Function: "t",
		Hook:     "useTranslation",
		Module:   "react-i18next",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Function == "" {
		o.Function = def.Function
	}
	if o.Hook == "" {
		o.Hook = def.Hook
	}
	if o.Module == "" {
		o.Module = def.Module
	}
	return o
}

func (o Options) importStatement() string {
	return fmt.Sprintf("import { %s } from '%s'", o.Hook, o.Module)
}

func (o Options) hookStatement() string {
	return fmt.Sprintf("const { %s } = %s()", o.Function, o.Hook)
}

func (o Options) call(key string) string {
	return fmt.Sprintf(`%s("%s")`, o.Function, key)
}

// Result is the outcome of rewriting one file
type Result struct {
	Content      string
	Changed      bool
	Replacements int
	ImportAdded  bool
	HookAdded    bool
}

// Rewriter applies one profile's dictionary to file contents
type Rewriter struct {
	profile Profile
	dict    *dictionary.Dictionary
	opts    Options
}

// NewRewriter validates the profile and binds it to a dictionary
func NewRewriter(p Profile, dict *dictionary.Dictionary, opts Options) (*Rewriter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, fmt.Errorf("profile %s: no dictionary", p.Name)
	}
	if invalid := dict.Validate(); len(invalid) > 0 {
		bad := make([]string, len(invalid))
		for i, e := range invalid {
			bad[i] = e.String()
		}
		return nil, fmt.Errorf("dictionary %s has invalid keys: %s", dict.Name, strings.Join(bad, ", "))
	}
	return &Rewriter{profile: p, dict: dict, opts: opts.withDefaults()}, nil
}

// Profile returns the bound profile
func (r *Rewriter) Profile() Profile {
	return r.profile
}

// Rewrite wires the hook when needed, then substitutes every dictionary phrase
func (r *Rewriter) Rewrite(path, content string) Result {
	original := content

	content, importAdded, hookAdded := r.wire(path, content)
	content, count := r.substitute(content)

	if count == 0 && r.profile.RequiresHits() {
		return Result{Content: original}
	}

	return Result{
		Content:      content,
		Changed:      content != original,
		Replacements: count,
		ImportAdded:  importAdded,
		HookAdded:    hookAdded,
	}
}

// wire adds the import and hook call to a .tsx file that lacks them
func (r *Rewriter) wire(path, content string) (string, bool, bool) {
	if strings.Contains(content, r.opts.Hook) {
		return content, false, false
	}
	if !strings.HasSuffix(path, ".tsx") {
		return content, false, false
	}

	var importAdded bool
	switch r.profile.Import {
	case ImportAfterReact:
		content, importAdded = r.insertAfterReactLine(content)
	case ImportAfterLastImport:
		content, importAdded = r.insertAfterLastImport(content)
	case ImportReplaceReact:
		content, importAdded = r.insertAfterReactToken(content)
		if !importAdded {
			return content, false, false
		}
	}

	content, hookAdded := r.insertHook(content)
	return content, importAdded, hookAdded
}

func (r *Rewriter) insertAfterReactLine(content string) (string, bool) {
	if !strings.Contains(content, "import React") {
		return content, false
	}
	loc := reactImportLine.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	return content[:loc[1]] + r.opts.importStatement() + "\n" + content[loc[1]:], true
}

func (r *Rewriter) insertAfterReactToken(content string) (string, bool) {
	idx := strings.Index(content, "import React")
	if idx < 0 {
		return content, false
	}
	pos := idx + len("import React")
	return content[:pos] + "\n" + r.opts.importStatement() + content[pos:], true
}

func (r *Rewriter) insertAfterLastImport(content string) (string, bool) {
	if !strings.Contains(content, "import React") && !strings.Contains(content, "import {") {
		return content, false
	}
	locs := importLine.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return content, false
	}
	last := locs[len(locs)-1]
	pos := endOfImport(content, last[0], last[1])
	return content[:pos] + "\n" + r.opts.importStatement() + content[pos:], true
}

// endOfImport extends an import that opens a brace block to the line closing it
func endOfImport(content string, start, end int) int {
	line := content[start:end]
	if strings.Count(line, "{") <= strings.Count(line, "}") {
		return end
	}
	pos := end
	for pos < len(content) {
		lineStart := pos + 1
		lineEnd := strings.IndexByte(content[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(content)
		} else {
			lineEnd += lineStart
		}
		if importFromLine.MatchString(content[lineStart:lineEnd]) {
			return lineEnd
		}
		pos = lineEnd
	}
	return end
}

func (r *Rewriter) insertHook(content string) (string, bool) {
	for _, name := range r.profile.Hooks {
		loc := hookPatterns[name].FindStringIndex(content)
		if loc == nil {
			continue
		}
		pos := loc[1]
		if strings.Contains(runePrefix(content[pos:], hookWindow), fmt.Sprintf("const { %s }", r.opts.Function)) {
			return content, false
		}
		return content[:pos] + "\n  " + r.opts.hookStatement() + content[pos:], true
	}
	return content, false
}

// runePrefix returns at most n runes of s
func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// substitute replaces quoted literals and, when enabled, JSX text nodes
func (r *Rewriter) substitute(content string) (string, int) {
	total := 0
	for _, phrase := range r.dict.Phrases() {
		key, _ := r.dict.Lookup(phrase)
		call := r.opts.call(key)

		replacement := call
		if r.profile.Wrap == WrapExpression {
			replacement = "{" + call + "}"
		}

		for _, q := range r.profile.Quotes {
			pattern := q + phrase + q
			if n := strings.Count(content, pattern); n > 0 {
				content = strings.ReplaceAll(content, pattern, replacement)
				total += n
			}
		}

		if r.profile.RewritesTextNodes() {
			pattern := ">" + phrase + "<"
			if n := strings.Count(content, pattern); n > 0 {
				content = strings.ReplaceAll(content, pattern, ">{"+call+"}<")
				total += n
			}
		}
	}
	return content, total
}

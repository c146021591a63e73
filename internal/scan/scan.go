// Package scan finds Thai text still hard-coded in source files
package scan

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/yejune/thai-i18n/internal/dictionary"
)

// Kinds of hard-coded text
const (
	KindString   = "string"
	KindTemplate = "template"
	KindText     = "text"
)

type pattern struct {
	kind string
	re   *regexp.Regexp
}

// Order matters: earlier patterns claim a span first
var patterns = []pattern{
	{KindString, regexp.MustCompile(`"((?:[^"\\\n<>]|\\.)*\p{Thai}(?:[^"\\\n<>]|\\.)*)"`)},
	{KindString, regexp.MustCompile(`'((?:[^'\\\n<>]|\\.)*\p{Thai}(?:[^'\\\n<>]|\\.)*)'`)},
	{KindTemplate, regexp.MustCompile("`([^`\\n]*\\p{Thai}[^`\\n]*)`")},
	{KindText, regexp.MustCompile(`>([^<>{}\n]*\p{Thai}[^<>{}\n]*)<`)},
}

// Hit is one hard-coded Thai literal
type Hit struct {
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
}

type span struct {
	start, end int
	hit        Hit
}

// Content scans one file's content. dict may be nil.
func Content(file, content string, dict *dictionary.Dictionary) []Hit {
	var hits []Hit

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "/*") {
			continue
		}

		var spans []span
		for _, p := range patterns {
			for _, m := range p.re.FindAllStringSubmatchIndex(line, -1) {
				text := strings.TrimSpace(line[m[2]:m[3]])
				if text == "" {
					continue
				}
				h := Hit{
					File:   file,
					Line:   i + 1,
					Column: utf8.RuneCountInString(line[:m[0]]) + 1,
					Kind:   p.kind,
					Text:   text,
				}
				if dict != nil {
					if key, ok := dict.Lookup(text); ok {
						h.Key = key
					}
				}
				spans = append(spans, span{start: m[0], end: m[1], hit: h})
			}
		}

		sort.SliceStable(spans, func(a, b int) bool { return spans[a].start < spans[b].start })
		end := -1
		for _, s := range spans {
			if s.start < end {
				continue
			}
			hits = append(hits, s.hit)
			end = s.end
		}
	}

	return hits
}

// Summary counts hits and how many of them have a known key
func Summary(hits []Hit) (total, known int) {
	for _, h := range hits {
		if h.Key != "" {
			known++
		}
	}
	return len(hits), known
}

// Write renders hits as text, json or yaml
func Write(w io.Writer, format string, hits []Hit) error {
	switch format {
	case "json":
		if hits == nil {
			hits = []Hit{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	case "yaml":
		if hits == nil {
			hits = []Hit{}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(hits); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		return writeText(w, hits)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeText(w io.Writer, hits []Hit) error {
	file := ""
	for _, h := range hits {
		if h.File != file {
			if file != "" {
				fmt.Fprintln(w)
			}
			file = h.File
			fmt.Fprintln(w, color.New(color.Bold).Sprint(file))
		}
		suggestion := color.YellowString("(no key)")
		if h.Key != "" {
			suggestion = color.GreenString("→ %s", h.Key)
		}
		fmt.Fprintf(w, "  %d:%d  %-8s %s  %s\n", h.Line, h.Column, h.Kind, h.Text, suggestion)
	}
	return nil
}

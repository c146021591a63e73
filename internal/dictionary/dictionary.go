// Package dictionary holds the phrase-to-key tables used by the rewriter
package dictionary

import (
	"embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tables embed.FS

// builtinOrder lists the embedded tables in the order they are documented
var builtinOrder = []string{"member", "public", "components", "files"}

// keyPattern matches namespace:segment(.segment)*
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*:[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// marshalFunc is the function used to marshal YAML (allows testing)
var marshalFunc = yaml.Marshal

// Entry is a single phrase/key pair
type Entry struct {
	Phrase string `yaml:"phrase"`
	Key    string `yaml:"key"`
}

// Dictionary maps literal Thai phrases to lookup keys
type Dictionary struct {
	Name    string
	entries map[string]string
}

// InvalidKey describes an entry whose key is not a valid lookup key
type InvalidKey struct {
	Phrase string
	Key    string
}

func (e InvalidKey) String() string {
	return fmt.Sprintf("%q -> %q", e.Phrase, e.Key)
}

// New creates an empty dictionary
func New(name string) *Dictionary {
	return &Dictionary{
		Name:    name,
		entries: map[string]string{},
	}
}

// Set adds or overwrites a phrase
func (d *Dictionary) Set(phrase, key string) {
	d.entries[phrase] = key
}

// Lookup returns the key for a phrase
func (d *Dictionary) Lookup(phrase string) (string, bool) {
	key, ok := d.entries[phrase]
	return key, ok
}

// Len returns the number of phrases
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Phrases returns all phrases, longest first, then lexicographic
func (d *Dictionary) Phrases() []string {
	phrases := make([]string, 0, len(d.entries))
	for p := range d.entries {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(phrases[i]), utf8.RuneCountInString(phrases[j])
		if li != lj {
			return li > lj
		}
		return phrases[i] < phrases[j]
	})
	return phrases
}

// Entries returns all entries in Phrases order
func (d *Dictionary) Entries() []Entry {
	phrases := d.Phrases()
	out := make([]Entry, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, Entry{Phrase: p, Key: d.entries[p]})
	}
	return out
}

// Merge copies every entry of other into d, overwriting existing phrases
func (d *Dictionary) Merge(other *Dictionary) {
	for p, k := range other.entries {
		d.entries[p] = k
	}
}

// ValidKey reports whether key is a namespaced dotted lookup key
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Validate returns every entry with an invalid key, in Phrases order
func (d *Dictionary) Validate() []InvalidKey {
	var invalid []InvalidKey
	for _, e := range d.Entries() {
		if !ValidKey(e.Key) {
			invalid = append(invalid, InvalidKey{Phrase: e.Phrase, Key: e.Key})
		}
	}
	return invalid
}

// Parse reads a dictionary from YAML.
// Accepts a mapping (phrase: key) or a sequence of {phrase, key} entries.
// Repeated phrases overwrite earlier ones in both forms.
func Parse(name string, data []byte) (*Dictionary, error) {
	d := New(name)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	// Empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return d, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		// yaml.Unmarshal into a map rejects duplicate keys, walk the pairs instead
		for i := 0; i+1 < len(root.Content); i += 2 {
			k, v := root.Content[i], root.Content[i+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: phrase and key must be strings", k.Line)
			}
			if k.Value == "" {
				return nil, fmt.Errorf("line %d: empty phrase", k.Line)
			}
			d.Set(k.Value, strings.TrimSpace(v.Value))
		}
	case yaml.SequenceNode:
		for _, item := range root.Content {
			var e Entry
			if err := item.Decode(&e); err != nil {
				return nil, fmt.Errorf("line %d: %w", item.Line, err)
			}
			if e.Phrase == "" {
				return nil, fmt.Errorf("line %d: empty phrase", item.Line)
			}
			d.Set(e.Phrase, strings.TrimSpace(e.Key))
		}
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return d, nil
		}
		return nil, fmt.Errorf("dictionary must be a mapping or a list")
	default:
		return nil, fmt.Errorf("dictionary must be a mapping or a list")
	}

	return d, nil
}

// LoadFile reads a dictionary from a YAML file
func LoadFile(name, path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Marshal renders the dictionary as a phrase: key mapping
func (d *Dictionary) Marshal() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d.Entries() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Phrase},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Key},
		)
	}
	return marshalFunc(root)
}

// BuiltinNames returns the names of the embedded tables
func BuiltinNames() []string {
	out := make([]string, len(builtinOrder))
	copy(out, builtinOrder)
	return out
}

// Builtin returns a fresh copy of an embedded table
func Builtin(name string) (*Dictionary, error) {
	data, err := tables.ReadFile("tables/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown dictionary: %s", name)
	}
	return Parse(name, data)
}

package highlight

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// TableSpec is the on-disk form of a lexical table.
type TableSpec struct {
	Language    string   `yaml:"language"`
	Comment     string   `yaml:"comment,omitempty"`
	OtherPrefix bool     `yaml:"other_prefix,omitempty"`
	Types       []string `yaml:"types,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty"`
	Literals    []string `yaml:"literals,omitempty"`
	Builtins    []string `yaml:"builtins,omitempty"`
	Others      []string `yaml:"others,omitempty"`
}

// buckets maps a first character to candidate words, longest first.
type buckets map[rune][][]rune

func newBuckets(words []string) buckets {
	b := make(buckets)
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		r := []rune(w)
		b[r[0]] = append(b[r[0]], r)
	}
	for _, ws := range b {
		sort.SliceStable(ws, func(i, j int) bool { return len(ws[i]) > len(ws[j]) })
	}
	return b
}

func (b buckets) words() []string {
	var out []string
	for _, ws := range b {
		for _, w := range ws {
			out = append(out, string(w))
		}
	}
	sort.Strings(out)
	return out
}

// LexicalTable holds the word lists of one language, bucketed by first
// character. It is never modified after construction.
type LexicalTable struct {
	Name string
	// Comment is the line comment character, or 0 when the language uses //
	// and /* */.
	Comment rune
	// OtherPrefix widens "other" spans over the preceding character, so the
	// # of a preprocessor directive is included.
	OtherPrefix bool

	types    buckets
	keywords buckets
	literals buckets
	builtins buckets
	others   buckets
}

// NewTable builds a table from its spec.
func NewTable(spec TableSpec) (*LexicalTable, error) {
	if spec.Language == "" {
		return nil, fmt.Errorf("lexical table: missing language name")
	}
	t := &LexicalTable{
		Name:        spec.Language,
		OtherPrefix: spec.OtherPrefix,
		types:       newBuckets(spec.Types),
		keywords:    newBuckets(spec.Keywords),
		literals:    newBuckets(spec.Literals),
		builtins:    newBuckets(spec.Builtins),
		others:      newBuckets(spec.Others),
	}
	if spec.Comment != "" {
		if utf8.RuneCountInString(spec.Comment) != 1 {
			return nil, fmt.Errorf("lexical table %s: comment marker %q must be a single character", spec.Language, spec.Comment)
		}
		t.Comment, _ = utf8.DecodeRuneInString(spec.Comment)
	}
	return t, nil
}

// Spec converts the table back to its serialisable form.
func (t *LexicalTable) Spec() TableSpec {
	s := TableSpec{
		Language:    t.Name,
		OtherPrefix: t.OtherPrefix,
		Types:       t.types.words(),
		Keywords:    t.keywords.words(),
		Literals:    t.literals.words(),
		Builtins:    t.builtins.words(),
		Others:      t.others.words(),
	}
	if t.Comment != 0 {
		s.Comment = string(t.Comment)
	}
	return s
}

var emptyTable = &LexicalTable{}

// TableSet is the collection of tables a Highlighter dispatches over.
type TableSet struct {
	tables map[string]*LexicalTable
}

// NewTableSet indexes tables by name.
func NewTableSet(tables ...*LexicalTable) *TableSet {
	ts := &TableSet{tables: make(map[string]*LexicalTable, len(tables))}
	for _, t := range tables {
		ts.tables[t.Name] = t
	}
	return ts
}

// Table returns the table registered under name.
func (ts *TableSet) Table(name string) (*LexicalTable, bool) {
	t, ok := ts.tables[name]
	return t, ok
}

// For returns the table used for lang. Languages without a table get an
// empty one, so every block still goes through the generic scanner.
func (ts *TableSet) For(lang Language) *LexicalTable {
	if ts == nil {
		return emptyTable
	}
	if t, ok := ts.tables[lang.TableName()]; ok {
		return t
	}
	return emptyTable
}

// Names lists the table names in sorted order.
func (ts *TableSet) Names() []string {
	names := make([]string, 0, len(ts.tables))
	for n := range ts.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new set with the words of other added to ts. A table only
// present in other is taken as is; the comment marker of other wins when set.
func (ts *TableSet) Merge(other *TableSet) (*TableSet, error) {
	out := NewTableSet()
	for n, t := range ts.tables {
		out.tables[n] = t
	}
	for n, o := range other.tables {
		base, ok := out.tables[n]
		if !ok {
			out.tables[n] = o
			continue
		}
		bs, extra := base.Spec(), o.Spec()
		if extra.Comment != "" {
			bs.Comment = extra.Comment
		}
		bs.OtherPrefix = bs.OtherPrefix || extra.OtherPrefix
		bs.Types = append(bs.Types, extra.Types...)
		bs.Keywords = append(bs.Keywords, extra.Keywords...)
		bs.Literals = append(bs.Literals, extra.Literals...)
		bs.Builtins = append(bs.Builtins, extra.Builtins...)
		bs.Others = append(bs.Others, extra.Others...)
		merged, err := NewTable(bs)
		if err != nil {
			return nil, err
		}
		out.tables[n] = merged
	}
	return out, nil
}

// LoadTables decodes every *.yaml file at the root of fsys into a table.
func LoadTables(fsys fs.FS) (*TableSet, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing lexical tables: %w", err)
	}
	ts := NewTableSet()
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading lexical table %s: %w", name, err)
		}
		var spec TableSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing lexical table %s: %w", name, err)
		}
		if spec.Language == "" {
			spec.Language = name[:len(name)-len(path.Ext(name))]
		}
		t, err := NewTable(spec)
		if err != nil {
			return nil, err
		}
		ts.tables[t.Name] = t
	}
	return ts, nil
}

var (
	defaultTables     *TableSet
	defaultTablesOnce sync.Once
)

// DefaultTables returns the tables embedded in the binary. They are decoded
// once and shared; a broken embedded table is a build defect and panics.
func DefaultTables() *TableSet {
	defaultTablesOnce.Do(func() {
		sub, err := fs.Sub(dataFS, "data")
		if err != nil {
			panic(err)
		}
		ts, err := LoadTables(sub)
		if err != nil {
			panic(err)
		}
		defaultTables = ts
	})
	return defaultTables
}

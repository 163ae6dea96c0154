package highlight

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestDefaultTables_CoverLanguages(t *testing.T) {
	ts := DefaultTables()
	for _, l := range Languages() {
		name := l.TableName()
		if name == "" {
			continue
		}
		_, ok := ts.Table(name)
		require.True(t, ok, "missing table %q for %s", name, l)
	}

	py, _ := ts.Table("python")
	require.Equal(t, '#', py.Comment)
	cpp, _ := ts.Table("cpp")
	require.Equal(t, rune(0), cpp.Comment)
	require.True(t, cpp.OtherPrefix)
}

func TestDefaultTables_NullLiteralsSurviveDecoding(t *testing.T) {
	cpp, _ := DefaultTables().Table("cpp")
	require.Contains(t, cpp.Spec().Literals, "NULL")
	require.NotContains(t, cpp.Spec().Literals, "")
}

func TestLoadTables(t *testing.T) {
	fsys := fstest.MapFS{
		"toy.yaml":   {Data: []byte("comment: \";\"\nkeywords: [let, in]\n")},
		"notes.txt":  {Data: []byte("ignored")},
		"other.yaml": {Data: []byte("language: named\ntypes: [Int]\n")},
	}
	ts, err := LoadTables(fsys)
	require.NoError(t, err)
	require.Equal(t, []string{"named", "toy"}, ts.Names())

	toy, ok := ts.Table("toy")
	require.True(t, ok, "language name falls back to the file name")
	require.Equal(t, ';', toy.Comment)
	require.Equal(t, []string{"in", "let"}, toy.Spec().Keywords)
}

func TestLoadTables_Errors(t *testing.T) {
	_, err := LoadTables(fstest.MapFS{"bad.yaml": {Data: []byte("keywords: [unclosed\n")}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing lexical table bad.yaml")

	_, err = LoadTables(fstest.MapFS{"long.yaml": {Data: []byte("comment: \"--\"\n")}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "single character")
}

func TestTableSet_Merge(t *testing.T) {
	base, err := NewTable(TableSpec{Language: "go", Keywords: []string{"func"}})
	require.NoError(t, err)
	extra, err := NewTable(TableSpec{Language: "go", Keywords: []string{"func", "yield"}, Comment: "#"})
	require.NoError(t, err)
	fresh, err := NewTable(TableSpec{Language: "toy", Types: []string{"T"}})
	require.NoError(t, err)

	merged, err := NewTableSet(base).Merge(NewTableSet(extra, fresh))
	require.NoError(t, err)

	g, _ := merged.Table("go")
	require.Equal(t, []string{"func", "yield"}, g.Spec().Keywords)
	require.Equal(t, '#', g.Comment)
	_, ok := merged.Table("toy")
	require.True(t, ok)

	// The inputs are left alone.
	require.Equal(t, []string{"func"}, base.Spec().Keywords)
}

func TestTableSet_ForUnknownLanguage(t *testing.T) {
	ts := NewTableSet()
	require.NotNil(t, ts.For(Go))
	require.Equal(t, rune(0), ts.For(Go).Comment)

	var nilSet *TableSet
	require.NotNil(t, nilSet.For(Go))
}

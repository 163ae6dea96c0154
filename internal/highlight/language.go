package highlight

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Language selects the grammar used to highlight a block.
type Language int

const (
	Plain Language = iota
	Cpp
	C
	JavaScript
	TypeScript
	PHP
	QML
	Python
	Rust
	Java
	CSharp
	Go
	V
	SQL
	JSON
	XML
	CSS
	YAML
	INI
	Bash

	numLanguages
)

// ErrUnknownLanguage is returned when a language name cannot be resolved.
var ErrUnknownLanguage = errors.New("unknown language")

type languageInfo struct {
	name    string
	table   string // lexical table name, empty if the language has none
	aliases []string
	exts    []string
}

var languages = [numLanguages]languageInfo{
	Plain:      {name: "plain", aliases: []string{"text", "txt", "none"}, exts: []string{".txt"}},
	Cpp:        {name: "cpp", table: "cpp", aliases: []string{"c++", "cxx", "hpp"}, exts: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}},
	C:          {name: "c", table: "cpp", aliases: []string{"h"}, exts: []string{".c", ".h"}},
	JavaScript: {name: "javascript", table: "javascript", aliases: []string{"js", "jsx"}, exts: []string{".js", ".jsx", ".mjs", ".cjs"}},
	TypeScript: {name: "typescript", table: "typescript", aliases: []string{"ts", "tsx"}, exts: []string{".ts", ".tsx"}},
	PHP:        {name: "php", table: "php", exts: []string{".php"}},
	QML:        {name: "qml", table: "qml", exts: []string{".qml"}},
	Python:     {name: "python", table: "python", aliases: []string{"py"}, exts: []string{".py", ".pyw"}},
	Rust:       {name: "rust", table: "rust", aliases: []string{"rs"}, exts: []string{".rs"}},
	Java:       {name: "java", table: "java", exts: []string{".java"}},
	CSharp:     {name: "csharp", table: "csharp", aliases: []string{"c#", "cs"}, exts: []string{".cs"}},
	Go:         {name: "go", table: "go", aliases: []string{"golang"}, exts: []string{".go"}},
	V:          {name: "v", table: "v", aliases: []string{"vlang"}, exts: []string{".v"}},
	SQL:        {name: "sql", table: "sql", exts: []string{".sql"}},
	JSON:       {name: "json", table: "json", exts: []string{".json"}},
	XML:        {name: "xml", aliases: []string{"html", "svg"}, exts: []string{".xml", ".html", ".htm", ".svg", ".xhtml"}},
	CSS:        {name: "css", table: "css", exts: []string{".css"}},
	YAML:       {name: "yaml", table: "yaml", aliases: []string{"yml"}, exts: []string{".yaml", ".yml"}},
	INI:        {name: "ini", table: "ini", aliases: []string{"conf", "cfg", "toml"}, exts: []string{".ini", ".conf", ".cfg", ".toml"}},
	Bash:       {name: "bash", table: "bash", aliases: []string{"sh", "shell", "zsh"}, exts: []string{".sh", ".bash", ".zsh"}},
}

// Languages returns every supported language in id order.
func Languages() []Language {
	out := make([]Language, 0, numLanguages)
	for l := Plain; l < numLanguages; l++ {
		out = append(out, l)
	}
	return out
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l >= Plain && l < numLanguages
}

func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languages[l].name
}

// Aliases returns the alternative names accepted by ParseLanguage.
func (l Language) Aliases() []string {
	if !l.Valid() {
		return nil
	}
	return languages[l].aliases
}

// Extensions returns the file extensions mapped to l.
func (l Language) Extensions() []string {
	if !l.Valid() {
		return nil
	}
	return languages[l].exts
}

// TableName is the name of the lexical table l is highlighted with.
func (l Language) TableName() string {
	if !l.Valid() {
		return ""
	}
	return languages[l].table
}

// ParseLanguage resolves a language by its name or one of its aliases.
func ParseLanguage(name string) (Language, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for l := Plain; l < numLanguages; l++ {
		if languages[l].name == n {
			return l, nil
		}
		for _, a := range languages[l].aliases {
			if a == n {
				return l, nil
			}
		}
	}
	return Plain, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// LanguageForFile picks a language from the file extension, falling back to Plain.
func LanguageForFile(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Plain
	}
	for l := Plain; l < numLanguages; l++ {
		for _, e := range languages[l].exts {
			if e == ext {
				return l
			}
		}
	}
	return Plain
}

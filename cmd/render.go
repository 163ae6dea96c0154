package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SQU1DMAN6/sitehl/internal/config"
	"github.com/SQU1DMAN6/sitehl/internal/document"
	"github.com/SQU1DMAN6/sitehl/internal/highlight"
	"github.com/SQU1DMAN6/sitehl/internal/log"
	"github.com/SQU1DMAN6/sitehl/internal/theme"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Print a file with syntax highlighting",
	Long: `Print a file highlighted with the configured theme. With --spans the
per-line spans and block states are written as YAML instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Bool("spans", false, "dump per-line spans and states as YAML")
	renderCmd.Flags().String("color", "auto", "color output: auto, never, ansi, 256 or truecolor")
	rootCmd.AddCommand(renderCmd)
}

type renderOptions struct {
	Spans bool
	Color string
}

func runRender(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	cleanup, err := setupLogging(cfg)
	defer cleanup()
	if err != nil {
		return err
	}

	spans, _ := cmd.Flags().GetBool("spans")
	color, _ := cmd.Flags().GetString("color")
	return renderFile(cmd.OutOrStdout(), args[0], cfg, renderOptions{Spans: spans, Color: color})
}

// renderFile highlights path and writes it to w.
func renderFile(w io.Writer, path string, c config.Config, opts renderOptions) error {
	h, th, err := prepare(c)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lang := highlight.LanguageForFile(path)
	if c.Language != "" {
		if lang, err = highlight.ParseLanguage(c.Language); err != nil {
			return err
		}
	}

	doc := document.New(h, lang, document.WithCacheTTL(c.Cache.TTL))
	doc.SetText(string(data))
	stats := doc.Stats()
	log.Debug(log.CatCLI, "rendered", "path", path, "language", lang, "lines", doc.Len(),
		"highlighted", stats.Highlighted, "cache_hits", stats.CacheHits)

	if opts.Spans {
		return dumpSpans(w, path, doc)
	}

	r := lipgloss.NewRenderer(w)
	profile, ok, err := theme.ParseProfile(opts.Color)
	if err != nil {
		return err
	}
	if ok {
		r.SetColorProfile(profile)
	}
	for i, line := range doc.Lines() {
		if _, err := fmt.Fprintln(w, th.RenderLine(r, line, doc.Formats(i), c.TabWidth)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

type spanDump struct {
	Start      int    `yaml:"start"`
	Length     int    `yaml:"length"`
	Category   string `yaml:"category"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

type lineDump struct {
	Line      int        `yaml:"line"`
	Text      string     `yaml:"text"`
	State     int        `yaml:"state"`
	InComment bool       `yaml:"in_comment,omitempty"`
	Spans     []spanDump `yaml:"spans,omitempty"`
}

type fileDump struct {
	File     string     `yaml:"file"`
	Language string     `yaml:"language"`
	Lines    []lineDump `yaml:"lines"`
}

func dumpSpans(w io.Writer, path string, doc *document.Document) error {
	out := fileDump{File: path, Language: doc.Language().String()}
	for i, text := range doc.Lines() {
		st := doc.State(i)
		ld := lineDump{Line: i + 1, Text: text, State: st.Encode(), InComment: st.InBlockComment}
		for _, s := range doc.Spans(i) {
			sd := spanDump{Start: s.Start, Length: s.Length, Category: s.Category.String(), Underline: s.Underline}
			if s.Colors != nil {
				sd.Foreground = s.Colors.Foreground.Hex()
				sd.Background = s.Colors.Background.Hex()
			}
			ld.Spans = append(ld.Spans, sd)
		}
		out.Lines = append(out.Lines, ld)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding spans: %w", err)
	}
	return enc.Close()
}

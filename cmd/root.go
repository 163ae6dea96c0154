package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SQU1DMAN6/sitehl/internal/config"
	"github.com/SQU1DMAN6/sitehl/internal/editor"
	"github.com/SQU1DMAN6/sitehl/internal/highlight"
	"github.com/SQU1DMAN6/sitehl/internal/log"
	"github.com/SQU1DMAN6/sitehl/internal/theme"
)

const localConfigPath = ".sitehl/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "sitehl [file]",
	Short: "A terminal text editor with incremental syntax highlighting",
	Long: `sitehl is a small terminal text editor. Every line is highlighted on its
own from the state the previous line left behind, so an edit only
re-highlights the lines it actually affects.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/sitehl/config.yaml)")
	rootCmd.PersistentFlags().StringP("lang", "l", "",
		`force the highlighting language (see "sitehl langs")`)
	rootCmd.PersistentFlags().Bool("debug", false,
		"write a debug log (also enabled by SITEHL_DEBUG)")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the file when it changes on disk")

	// Bind flags to viper
	_ = viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("lang"))
	_ = viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	cfg, configErr = loadConfig(viper.GetViper(), cfgFile)
}

func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("language", defaults.Language)
	v.SetDefault("tab_width", defaults.TabWidth)
	v.SetDefault("tables_dir", defaults.TablesDir)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.debug", defaults.Log.Debug)
}

// loadConfig reads the configuration into v and decodes it.
//
// Config lookup order:
//  1. explicit path (--config)
//  2. .sitehl/config.yaml (current directory)
//  3. ~/.config/sitehl/config.yaml (user config, created with defaults if missing)
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	setDefaults(v)

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if _, err := os.Stat(localConfigPath); err == nil {
		v.SetConfigFile(localConfigPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sitehl"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
		// No config file found anywhere - create the default one.
		if path := config.DefaultConfigPath(); path != "" {
			if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
				v.SetConfigFile(path)
				_ = v.ReadInConfig()
			} else {
				// Continue with defaults (no config file)
				log.Warn(log.CatConfig, "Using built-in defaults", "error", writeErr)
			}
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// setupLogging opens the debug log when --debug, log.debug or SITEHL_DEBUG
// asks for it. The returned cleanup is never nil.
func setupLogging(c config.Config) (func(), error) {
	if os.Getenv("SITEHL_DEBUG") == "" && !c.Log.Debug {
		return func() {}, nil
	}
	path := c.Log.File
	if path == "" {
		path = "debug.log"
	}
	cleanup, err := log.Init(path)
	if err != nil {
		return func() {}, fmt.Errorf("initializing debug log: %w", err)
	}
	log.Info(log.CatCLI, "sitehl starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// prepare validates c and builds the highlighter and theme it describes.
func prepare(c config.Config) (*highlight.Highlighter, *theme.Theme, error) {
	if err := config.Validate(c); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tables := highlight.DefaultTables()
	if c.TablesDir != "" {
		dir := expandHome(c.TablesDir)
		extra, err := highlight.LoadTables(os.DirFS(dir))
		if err != nil {
			return nil, nil, fmt.Errorf("loading tables from %s: %w", dir, err)
		}
		if tables, err = tables.Merge(extra); err != nil {
			return nil, nil, fmt.Errorf("merging tables from %s: %w", dir, err)
		}
		log.Info(log.CatHighlight, "Loaded lexical tables", "dir", dir, "tables", strings.Join(extra.Names(), ","))
	}

	th, err := theme.FromConfig(c.Theme)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid theme: %w", err)
	}
	return highlight.New(tables), th, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func runEditor(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	cleanup, err := setupLogging(cfg)
	defer cleanup()
	if err != nil {
		return err
	}

	h, th, err := prepare(cfg)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Invalid configuration", err)
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	ed, err := editor.New(screen, editor.Options{
		Highlighter: h,
		Theme:       th,
		Language:    cfg.Language,
		TabWidth:    cfg.TabWidth,
		CacheTTL:    cfg.Cache.TTL,
		Version:     version,
		Watch:       !noWatch,
	})
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := ed.Open(args[0]); err != nil {
			return err
		}
	}

	if err := ed.Run(); err != nil {
		log.ErrorErr(log.CatEditor, "Editor stopped", err)
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

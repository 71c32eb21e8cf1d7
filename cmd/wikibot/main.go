// cmd/wikibot/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wikibot/internal/botstore"
	"wikibot/internal/config"
	"wikibot/internal/logging"
	"wikibot/internal/mediawiki"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
	langFlag   string
	botFlag    string
	logLevel   string
)

func versionString() string {
	return fmt.Sprintf("wikibot %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "wikibot",
		Short:         "A MediaWiki maintenance bot for the game wikis",
		Long:          "wikibot — queries, creates and cleans up pages on the game encyclopedia wikis.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "override wiki language")
	rootCmd.PersistentFlags().StringVar(&botFlag, "bot", "", "bot account name (default: the language's default bot)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(botCmd())
	rootCmd.AddCommand(pageCmd())
	rootCmd.AddCommand(categoryCmd())
	rootCmd.AddCommand(cleanupCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path, loads the config, and applies
// flag overrides.
func loadConfig() (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgPath = filepath.Join(home, ".config", "wikibot", "config.toml")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if langFlag != "" {
		cfg.Lang = langFlag
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	return cfg, nil
}

// newLogger builds the run logger. Every run carries a fresh id so
// interleaved logs from concurrent invocations stay attributable.
func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(os.Stderr, cfg.Log.Level).
		With().Str("run_id", uuid.NewString()).Logger()
}

// openStore opens the bot credential database, creating its directory
// on first use.
func openStore(cfg *config.Config) (*botstore.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.BotDB), 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	return botstore.Open(cfg.BotDB)
}

// resolveBot picks the account for this run: the --bot flag when set,
// otherwise the language's default. Returns nil when neither exists.
func resolveBot(store *botstore.Store, cfg *config.Config) (*botstore.Bot, error) {
	if botFlag != "" {
		b, err := store.Get(cfg.Lang, botFlag)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, fmt.Errorf("no bot %q registered for lang %q", botFlag, cfg.Lang)
		}
		return b, nil
	}
	return store.Default(cfg.Lang)
}

// newSession builds a wiki session. When authenticated is true a bot
// account must resolve, and the session is wired with its credential.
func newSession(cfg *config.Config, log zerolog.Logger, authenticated bool) (*mediawiki.Session, error) {
	opts := []mediawiki.Option{
		mediawiki.WithLogger(log),
		mediawiki.WithBackoff(time.Duration(cfg.API.EditBackoffSeconds) * time.Second),
		mediawiki.WithRequestRate(cfg.API.RequestsPerSecond),
	}

	if authenticated {
		store, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		bot, err := resolveBot(store, cfg)
		if err != nil {
			return nil, err
		}
		if bot == nil {
			return nil, fmt.Errorf("no bot account for lang %q: run 'wikibot bot add' first", cfg.Lang)
		}
		opts = append(opts, mediawiki.WithCredential(bot.Credential()))
	}

	return mediawiki.New(cfg.Endpoint, cfg.Lang, opts...), nil
}

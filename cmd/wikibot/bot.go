// cmd/wikibot/bot.go
package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wikibot/internal/botstore"
)

func botCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Manage stored bot accounts",
	}

	cmd.AddCommand(botAddCmd())
	cmd.AddCommand(botListCmd())
	cmd.AddCommand(botDefaultCmd())
	cmd.AddCommand(botRemoveCmd())

	return cmd
}

func botAddCmd() *cobra.Command {
	var (
		setDefault bool
		noVerify   bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a bot account for the current language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			name := args[0]

			password, err := readPassword(fmt.Sprintf("Password for %s@%s: ", name, cfg.Lang))
			if err != nil {
				return err
			}

			bot := botstore.Bot{
				Lang:     cfg.Lang,
				Name:     name,
				Password: password,
				Default:  setDefault,
			}

			// Probe the credentials against the live wiki before
			// storing them, unless explicitly skipped.
			if !noVerify {
				log := newLogger(cfg)
				session, err := newSession(cfg, log, false)
				if err != nil {
					return err
				}
				session.SetBot(cmd.Context(), bot.Credential())
				if err := session.Login(cmd.Context()); err != nil {
					return fmt.Errorf("login check failed: %w", err)
				}
				defer session.Logout(cmd.Context())
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Add(bot); err != nil {
				return err
			}
			color.Green("Stored bot %s for lang %s.", name, cfg.Lang)
			return nil
		},
	}

	cmd.Flags().BoolVar(&setDefault, "default", false, "make this the language's default bot")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip the login check against the wiki")

	return cmd
}

func botListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bot accounts for the current language",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			bots, err := store.List(cfg.Lang)
			if err != nil {
				return err
			}
			if len(bots) == 0 {
				fmt.Printf("No bots registered for lang %s.\n", cfg.Lang)
				return nil
			}
			for _, b := range bots {
				marker := " "
				if b.Default {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, b.Name)
			}
			return nil
		},
	}
}

func botDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <name>",
		Short: "Make a stored bot the language's default",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.SetDefault(cfg.Lang, args[0])
		},
	}
}

func botRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a stored bot account",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.Remove(cfg.Lang, args[0])
		},
	}
}

// readPassword prompts on the terminal without echoing. When stdin is
// not a terminal (piped input) it falls back to reading a line.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// cmd/wikibot/category.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Query wiki page lists",
	}

	cmd.AddCommand(categoryMembersCmd())
	cmd.AddCommand(categoryShortCmd())
	cmd.AddCommand(categoryImagesCmd())

	return cmd
}

func categoryMembersCmd() *cobra.Command {
	var exclude string

	cmd := &cobra.Command{
		Use:   "members <name>",
		Short: "List the pages of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := newSession(cfg, newLogger(cfg), false)
			if err != nil {
				return err
			}

			pages, err := session.CategoryMembers(cmd.Context(), args[0], exclude)
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Println(p.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exclude, "exclude", "", "drop pages that are also in this category")

	return cmd
}

func categoryShortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "short",
		Short: "List zero-length pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := newSession(cfg, newLogger(cfg), false)
			if err != nil {
				return err
			}

			pages, err := session.ShortPages(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Println(p.Title)
			}
			return nil
		},
	}
}

func categoryImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "List every file page on the wiki",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := newSession(cfg, newLogger(cfg), false)
			if err != nil {
				return err
			}

			pages, err := session.AllImages(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Println(p.Title)
			}
			return nil
		},
	}
}

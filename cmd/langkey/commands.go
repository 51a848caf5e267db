package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/langkey"
	"github.com/dmitrymomot/langkey/pkg/preview"
)

var errNoCall = errors.New("no translation call found")

func (c *cli) resolveCommand() *cobra.Command {
	var (
		locale   string
		asJSON   bool
		position bool
	)

	cmd := &cobra.Command{
		Use:   "resolve KEY",
		Short: "Print the value of a translation key",
		Example: `  langkey resolve auth.failed
  langkey resolve auth.failed --locale es --position`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeStore(cmd.Context()) }()

			t, err := store.Resolve(cmd.Context(), args[0], locale)
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				return c.printJSON(t)
			case position:
				_, err = fmt.Fprintf(c.stdout, "%s\t%s\n", t.Value, c.location(store, t))
			default:
				_, err = fmt.Fprintln(c.stdout, t.Value)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale (default: the configured default locale)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full translation as JSON")
	cmd.Flags().BoolVarP(&position, "position", "p", false, "append the declaration position")
	return cmd
}

func (c *cli) allCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "all KEY",
		Short: "Print a key in every locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeStore(cmd.Context()) }()

			all := store.ResolveAll(cmd.Context(), args[0])
			if asJSON {
				return c.printJSON(all)
			}

			entries := make([]preview.Entry, 0, len(all))
			for locale, t := range all {
				entries = append(entries, preview.Entry{
					Locale:   locale,
					Value:    t.Value,
					Location: c.location(store, t),
				})
			}
			_, err = fmt.Fprint(c.stdout, preview.Markdown(args[0], entries))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object keyed by locale")
	return cmd
}

func (c *cli) localesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locale directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeStore(cmd.Context()) }()

			return c.printLines(store.Locales())
		},
	}
}

func (c *cli) keysCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:     "keys FILE",
		Short:   "List the keys declared in a translation file",
		Example: "  langkey keys validation --locale es",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeStore(cmd.Context()) }()

			keys, err := store.Keys(cmd.Context(), args[0], locale)
			if err != nil {
				return err
			}
			return c.printLines(keys)
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale (default: the configured default locale)")
	return cmd
}

func (c *cli) extractCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "extract TEXT",
		Short:   "Print the key of the first translation call in TEXT",
		Example: `  langkey extract "{{ __('auth.failed') }}"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			key, ok := langkey.ExtractKey(strings.Join(args, " "))
			if !ok {
				return errNoCall
			}
			_, err := fmt.Fprintln(c.stdout, key)
			return err
		},
	}
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printLines(lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(c.stdout, l); err != nil {
			return err
		}
	}
	return nil
}

// location formats a 1-based editor position relative to the workspace root.
func (c *cli) location(store *langkey.Store, t langkey.Translation) string {
	path := t.File
	if rel, err := filepath.Rel(store.Root(), t.File); err == nil {
		path = filepath.ToSlash(rel)
	}
	return fmt.Sprintf("%s:%d:%d", path, t.Line+1, t.Column+1)
}

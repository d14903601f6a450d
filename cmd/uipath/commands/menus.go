package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leonardcser/uipath-mcp/internal/menu"
	"github.com/leonardcser/uipath-mcp/internal/snapshot"
)

func (c *CLI) newMenusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menus <application> [query]",
		Short: "Scan the recorded menu bar of an application and match menu paths",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			scanner := menu.NewScanner(snapshot.NewProvider(store),
				menu.WithMaxDepth(c.cfg.Menu.MaxDepth),
				menu.WithCacheTimeout(c.cfg.Cache.Timeout))
			h, err := scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var paths []string
			query := ""
			if len(args) == 2 {
				query = args[1]
			}
			switch {
			case query == "":
				paths = h.AllPaths()
			case mode == "exact":
				paths = menu.FindMatches(query, h)
			case mode == "partial":
				paths = menu.FindPartialMatches(query, h)
			case mode == "suggest":
				if limit <= 0 {
					limit = c.cfg.Menu.Suggestions
				}
				paths = menu.SuggestSimilar(query, h, limit)
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}
			if limit > 0 && len(paths) > limit {
				paths = paths[:limit]
			}

			out := cmd.OutOrStdout()
			for _, p := range paths {
				_, _ = fmt.Fprintln(out, p)
			}
			if len(paths) == 0 && query != "" {
				for _, s := range menu.SuggestSimilar(query, h, c.cfg.Menu.Suggestions) {
					_, _ = fmt.Fprintf(out, "did you mean: %s\n", s)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("mode", "m", "partial", "Match mode: exact, partial, or suggest")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of paths to print (0 prints all)")
	return cmd
}

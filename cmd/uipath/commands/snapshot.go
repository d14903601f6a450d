package commands

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/opaqueid"
	"github.com/leonardcser/uipath-mcp/internal/resolver"
	"github.com/leonardcser/uipath-mcp/internal/snapshot"
)

func (c *CLI) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <application> <tree.json>",
		Short: "Record an accessibility tree dump for an application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetDuration("ttl")
			// #nosec G304 -- the file is chosen by the user
			f, err := os.Open(args[1])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to open tree"), "file", args[1])
			}
			defer f.Close()
			root, err := snapshot.ReadNode(f)
			if err != nil {
				return zerr.With(err, "file", args[1])
			}

			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Put(args[0], root, ttl); err != nil {
				return err
			}
			logger.Infof("Imported snapshot for %s from %s", args[0], args[1])
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 0, "Expire the recording after this long (0 keeps it)")
	return cmd
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			ids, err := store.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path|id>",
		Short: "Resolve an element path against the recorded trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withChildren, _ := cmd.Flags().GetBool("children")

			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			provider := snapshot.NewProvider(store)
			r := resolver.New(provider, resolver.WithMaxDepth(c.cfg.Resolver.MaxDepth))

			path, err := opaqueid.ParseAny(args[0])
			if err != nil {
				return err
			}
			res, err := r.Resolve(cmd.Context(), path)
			if err != nil {
				return err
			}
			role, err := provider.Role(cmd.Context(), res.Element)
			if err != nil {
				return err
			}
			attrs, err := provider.Attributes(cmd.Context(), res.Element)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\t%s\n", role, formatAttrs(attrs))
			_, _ = fmt.Fprintf(out, "path\t%s\nid\t%s\n", res.Path, opaqueid.EncodePath(res.Path))
			if !withChildren {
				return nil
			}
			kids, err := r.Children(cmd.Context(), res)
			if err != nil {
				return err
			}
			for _, k := range kids {
				_, _ = fmt.Fprintf(out, "  %s\n", k.Path.Last())
			}
			return nil
		},
	}
	cmd.Flags().Bool("children", false, "Also list the direct children with their path segments")
	return cmd
}

func formatAttrs(attrs map[string]string) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	return strings.Join(parts, " ")
}

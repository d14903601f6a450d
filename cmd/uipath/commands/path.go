package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
	"github.com/leonardcser/uipath-mcp/internal/opaqueid"
)

func (c *CLI) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>",
		Short: "Print the canonical form and segments of an element path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := elementpath.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, p.String())
			for i, s := range p.Segments() {
				_, _ = fmt.Fprintf(out, "%d\t%s", i, s.Role())
				attrs := s.Attributes()
				for _, k := range slices.Sorted(maps.Keys(attrs)) {
					_, _ = fmt.Fprintf(out, "\t%s=%q", k, attrs[k])
				}
				switch {
				case s.IsPosition():
					_, _ = fmt.Fprintf(out, "\t#%d", s.Index())
				case s.HasIndex():
					_, _ = fmt.Fprintf(out, "\t[%d]", s.Index())
				}
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func (c *CLI) newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <path>",
		Short: "Encode an element path as an opaque id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := elementpath.Parse(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), opaqueid.EncodePath(p))
			return nil
		},
	}
}

func (c *CLI) newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>",
		Short: "Decode an opaque id back to its element path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opaqueid.Decode(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

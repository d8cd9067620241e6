package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reflected/internal/paths"
	"github.com/mesh-intelligence/reflected/pkg/reflected"
	"github.com/mesh-intelligence/reflected/pkg/types"
)

// maskedValue replaces secure field values in listings.
const maskedValue = "***"

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize reflected storage",
		Long:  "Create the configuration file and data directory, then create a table for every entity type.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := writeConfigIfMissing(a.configDir, types.Config{
				Backend:  a.config.Backend,
				DataDir:  a.config.DataDir,
				LogLevel: a.config.LogLevel,
				Seed:     a.config.Seed,
			})
			if err != nil {
				return sysError("write config: %w", err)
			}

			b, err := a.attachBackend()
			if err != nil {
				return err
			}
			if err := b.Detach(); err != nil {
				return sysError("finalize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "Wrote %s\n", paths.ConfigFile(a.configDir))
			}
			fmt.Fprintf(out, "Initialized reflected storage in %s\n", a.config.DataDir)
			return nil
		},
	}
}

func newFieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <type>",
		Short: "Print the field table of an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := descriptor(args[0])
			if err != nil {
				return err
			}
			renderFields(cmd, d, a.flags.noColor)
			return nil
		},
	}
}

// fieldFlags lists the declared attributes of f.
func fieldFlags(f *reflected.Field) string {
	var out []string
	if f.Unique {
		out = append(out, "unique")
	}
	if f.IsSecure() {
		out = append(out, "secure")
	}
	if f.Optional {
		out = append(out, "optional")
	}
	if f.IsSimple() {
		out = append(out, "simple")
	}
	return strings.Join(out, ",")
}

func renderFields(cmd *cobra.Command, d reflected.Descriptor, noColor bool) {
	t := newTextTable(cmd.OutOrStdout(), noColor, "#", "NAME", "TYPE", "ROLE", "FLAGS", "VARIANTS")
	t.highlight = func(col int, cell string) *color.Color {
		if col != 3 {
			return nil
		}
		switch strings.TrimSpace(cell) {
		case reflected.RoleID.String():
			return color.New(color.FgYellow)
		case reflected.RoleForeignKey.String():
			return color.New(color.FgMagenta)
		case reflected.RoleSecure.String():
			return color.New(color.FgRed)
		}
		return nil
	}
	for _, f := range d.Fields() {
		t.addRow(
			strconv.Itoa(f.Index()),
			f.Name,
			f.Type.String(),
			f.Role.String(),
			fieldFlags(f),
			strings.Join(f.Variants, "|"),
		)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d fields, %d simple)\n", d.TypeName(), len(d.Fields()), len(d.SimpleFields()))
	t.render()
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "seed <type>",
		Short: "Insert random instances of an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return userError("-n must not be negative")
			}
			b, s, err := a.store(args[0])
			if err != nil {
				return err
			}
			defer b.Detach()

			if !cmd.Flags().Changed("seed") {
				seed = a.config.Seed
			}
			gen := reflected.NewRandomGenerator()
			if seed != 0 {
				gen = reflected.NewGenerator(seed)
			}

			report, err := s.Seed(cmd.Context(), gen, count)
			if err != nil {
				return sysError("seed %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d %s (run %s)\n", report.Inserted, report.TypeName, report.RunID)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of instances to insert")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: config seed, else random)")
	return cmd
}

// maskSecure replaces the values of secure fields in row.
func maskSecure(d reflected.Descriptor, row types.Row) types.Row {
	for _, f := range d.Fields() {
		if !f.IsSecure() {
			continue
		}
		if v, ok := row[f.Name]; ok && v != nil {
			masked := maskedValue
			row[f.Name] = &masked
		}
	}
	return row
}

func newListCmd(a *app) *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "Print stored instances of an entity type as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := a.store(args[0])
			if err != nil {
				return err
			}
			defer b.Detach()

			rows, err := s.Rows(cmd.Context())
			if err != nil {
				return sysError("list %s: %w", args[0], err)
			}
			if !reveal {
				for _, row := range rows {
					maskSecure(s.Descriptor(), row)
				}
			}
			if rows == nil {
				rows = []types.Row{}
			}

			output, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return sysError("marshal rows: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "show secure field values")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete a stored instance by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return userError("invalid id %q: %w", args[1], types.ErrInvalidID)
			}
			b, s, err := a.store(args[0])
			if err != nil {
				return err
			}
			defer b.Detach()

			if err := s.Delete(cmd.Context(), id); err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return userError("delete: %w", err)
				}
				return sysError("delete: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", args[0], id)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <type> <file>",
		Short: "Write stored instances to a JSONL file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := a.store(args[0])
			if err != nil {
				return err
			}
			defer b.Detach()

			n, err := s.Export(cmd.Context(), args[1])
			if err != nil {
				return sysError("export %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", n, args[0], args[1])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <type> <file>",
		Short: "Load instances from a JSONL file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := a.store(args[0])
			if err != nil {
				return err
			}
			defer b.Detach()

			n, err := s.Import(cmd.Context(), args[1])
			if err != nil {
				return sysError("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s from %s\n", n, args[0], args[1])
			return nil
		},
	}
}

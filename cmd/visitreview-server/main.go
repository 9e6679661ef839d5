package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehr/visitreview/internal/config"
	"github.com/ehr/visitreview/internal/fixtures"
	"github.com/ehr/visitreview/internal/platform/db"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "visitreview-server",
		Short:        "Post-visit documentation review API",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(fixturesCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the review API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the fixture seed table schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, m *db.Migrator) error {
				count, err := m.Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s).\n", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, m *db.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return fmt.Errorf("get migration status: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-10s %-45s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				for _, s := range statuses {
					status, appliedAt := "pending", ""
					if s.Applied {
						status = "applied"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Fprintf(out, "%-10d %-45s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	})

	return cmd
}

func withPool(ctx context.Context, fn func(context.Context, *db.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, db.NewMigrator(pool, db.Migrations, "migrations"))
}

func fixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Inspect and seed fixture data",
	}

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Write the built-in fixtures as seed documents (JSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return dumpDocuments(w, fixtures.Static())
		},
	}
	dump.Flags().String("out", "-", "Output file, - for stdout")
	cmd.AddCommand(dump)

	check := &cobra.Command{
		Use:   "check",
		Short: "Report dangling references and multiple-primary notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			set, err := readSet(in)
			if err != nil {
				return err
			}
			return reportProblems(cmd.OutOrStdout(), set)
		},
	}
	check.Flags().String("in", "", "Seed document file to check instead of the built-in fixtures")
	cmd.AddCommand(check)

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Replace the fixture_document table contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			set, err := readSet(in)
			if err != nil {
				return err
			}
			docs, err := set.Documents()
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}
			ctx := cmd.Context()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := fixtures.Seed(ctx, pool, docs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d fixture document(s).\n", n)
			return nil
		},
	}
	seed.Flags().String("in", "", "Seed document file; defaults to the built-in fixtures")
	cmd.AddCommand(seed)

	return cmd
}

func dumpDocuments(w io.Writer, set *fixtures.Set) error {
	docs, err := set.Documents()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// readSet loads a dumped document file, or the built-in fixtures when path
// is empty.
func readSet(path string) (*fixtures.Set, error) {
	if path == "" {
		return fixtures.Static(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return decodeDocuments(raw)
}

func decodeDocuments(raw []byte) (*fixtures.Set, error) {
	var docs []fixtures.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode seed documents: %w", err)
	}
	return fixtures.FromDocuments(docs)
}

func reportProblems(w io.Writer, set *fixtures.Set) error {
	problems := fixtures.Check(set)
	if len(problems) == 0 {
		fmt.Fprintln(w, "fixtures ok")
		return nil
	}
	for _, p := range problems {
		fmt.Fprintln(w, p.String())
	}
	return fmt.Errorf("%d fixture problem(s)", len(problems))
}

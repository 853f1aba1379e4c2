package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planrep/pkg/cache"
)

// cacheCommand manages the on-disk artifact cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	sweeps := []struct {
		use, short string
		sweep      func(*cache.FileCache, context.Context) (int, error)
	}{
		{"clear", "Remove every cached artifact", (*cache.FileCache).Clear},
		{"prune", "Remove expired and unreadable cached artifacts", (*cache.FileCache).Prune},
	}
	for _, s := range sweeps {
		sweep := s.sweep
		cmd.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return sweepCache(cmd.Context(), sweep)
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	})
	return cmd
}

func sweepCache(ctx context.Context, sweep func(*cache.FileCache, context.Context) (int, error)) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	n, err := sweep(fc, ctx)
	if err != nil {
		return err
	}
	printSuccess("Removed %d cached artifacts", n)
	printDetail("%s", fc.Dir())
	return nil
}

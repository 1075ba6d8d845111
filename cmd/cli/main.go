package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/repomirror-go/internal/app"
	"github.com/yourusername/repomirror-go/internal/infrastructure"
	"github.com/yourusername/repomirror-go/pkg/logger"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "repomirror",
		Short: "Repomirror CLI - Mirror a repository's file tree from an HTTP origin",
		Long: `Mirror the file tree of a git repository: enumerate its files, download
each one from an HTTP origin under a bounded concurrency cap, and record a
SHA-256 digest per mirrored file.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
}

func buildManager(cmd *cobra.Command) (*app.MirrorManager, *infrastructure.SQLiteMirrorRepository, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	if repoURL, _ := cmd.Flags().GetString("repo-url"); repoURL != "" {
		config.Mirror.RepoURL = repoURL
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		config.Mirror.BaseURL = baseURL
	}
	if dest, _ := cmd.Flags().GetString("dest"); dest != "" {
		config.Mirror.DestDir = dest
	}
	if limit, _ := cmd.Flags().GetInt("concurrency"); limit > 0 {
		config.Mirror.ConcurrentLimit = limit
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: "stderr",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(config.Database.Path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := infrastructure.NewSQLiteMirrorRepository(config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	source := infrastructure.NewGitSource(config.Mirror.RepoURL, config.Mirror.Branch, log)
	fetcher := infrastructure.NewHTTPFetcher(nil, config.Mirror.ConcurrentLimit, log)
	manager := app.NewMirrorManager(repo, source, fetcher, &config.Mirror, log)

	return manager, repo, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a mirror run and print the digest of every mirrored file",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, repo, err := buildManager(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		run, digests, err := manager.Run(context.Background())
		if err != nil {
			return err
		}

		for _, d := range digests {
			fmt.Printf("%s: %s\n", filepath.Base(d.Path), d.Digest)
		}
		fmt.Fprintf(os.Stderr, "Run %s completed: %d files in %s\n", run.ID, run.FileCount, run.DestDir)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded mirror runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, repo, err := buildManager(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		filters := make(map[string]interface{})
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			filters["status"] = status
		}

		runs, err := manager.ListRuns(filters)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tREPO\tSTATUS\tFILES\tCREATED")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				truncate(r.ID, 8),
				truncate(r.RepoURL, 40),
				r.Status,
				r.FileCount,
				r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a run with its file digests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, repo, err := buildManager(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		run, err := manager.GetRun(args[0])
		if err != nil {
			return fmt.Errorf("run not found: %w", err)
		}

		fmt.Printf("Run Details:\n")
		fmt.Printf("  ID:       %s\n", run.ID)
		fmt.Printf("  Repo:     %s\n", run.RepoURL)
		fmt.Printf("  Origin:   %s\n", run.BaseURL)
		fmt.Printf("  Status:   %s\n", run.Status)
		fmt.Printf("  Files:    %d\n", run.FileCount)
		fmt.Printf("  Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
		if run.ErrorMessage != "" {
			fmt.Printf("  Error:    %s\n", run.ErrorMessage)
		}

		digests, err := manager.GetRunDigests(run.ID)
		if err != nil {
			return err
		}
		if len(digests) > 0 {
			fmt.Println("Files:")
			for _, d := range digests {
				fmt.Printf("  %s: %s\n", d.Path, d.Digest)
			}
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mirror run statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, repo, err := buildManager(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		stats, err := manager.GetStats()
		if err != nil {
			return err
		}

		fmt.Println("Mirror Statistics:")
		fmt.Printf("  Total:     %d\n", stats.Total)
		fmt.Printf("  Queued:    %d\n", stats.Queued)
		fmt.Printf("  Running:   %d\n", stats.Running)
		fmt.Printf("  Completed: %d\n", stats.Completed)
		fmt.Printf("  Failed:    %d\n", stats.Failed)
		fmt.Printf("  Files:     %d\n", stats.Files)
		return nil
	},
}

func init() {
	runCmd.Flags().String("repo-url", "", "Repository URL to enumerate")
	runCmd.Flags().String("base-url", "", "HTTP origin base URL")
	runCmd.Flags().String("dest", "", "Destination root (default: fresh temp directory)")
	runCmd.Flags().IntP("concurrency", "c", 0, "Concurrent download limit")
	historyCmd.Flags().StringP("status", "s", "", "Filter by status")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

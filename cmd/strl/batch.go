package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strl/internal/driver"
	"strl/internal/observ"
	"strl/internal/project"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Compile every pattern file in a directory or project",
	Long: `Compile all *.strl files under the given directory. Without an argument,
batch looks for a patterns.toml manifest in the current directory or any
parent and compiles the directories it includes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntP("jobs", "j", 0, "number of parallel compile jobs (0 = all CPUs)")
	batchCmd.Flags().Bool("cache", false, "reuse compiled artifacts from the disk cache")
	batchCmd.Flags().Bool("clear-cache", false, "drop all cached artifacts before compiling")
	batchCmd.Flags().Bool("timings", false, "print per-phase timing summary to stderr")
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	useCache, _ := cmd.Flags().GetBool("cache")
	clearCache, _ := cmd.Flags().GetBool("clear-cache")
	timings, _ := cmd.Flags().GetBool("timings")
	opts := outputOpts(cmd)
	timer := observ.NewTimer()

	dirs, err := batchDirs(cmd, args, &jobs, &useCache)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if useCache || clearCache {
		cache, err = driver.OpenDiskCache("strl")
		if err != nil {
			return fmt.Errorf("open artifact cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear artifact cache: %w", err)
			}
		}
		if !useCache {
			cache = nil
		}
	}

	failed := 0
	for _, dir := range dirs {
		phase := timer.Begin(dir)
		fs, results, err := driver.CompileDir(cmd.Context(), dir, driver.BatchOptions{
			Jobs:  jobs,
			Cache: cache,
		})
		if err != nil {
			return err
		}
		timer.End(phase, fmt.Sprintf("%d file(s)", len(results)))
		for _, res := range results {
			if res.Err != nil {
				failed++
				reportDiagnostic(cmd, fs, res.FileID, res.Err)
				continue
			}
			if opts.Quiet {
				continue
			}
			note := ""
			if res.Cached {
				note = " (cached)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s: %s\n", res.Path, note, res.Artifact.Pattern)
		}
	}
	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d pattern(s) failed\n", failed)
		os.Exit(1)
	}
	return nil
}

// batchDirs resolves the directories to compile. An explicit argument wins;
// otherwise the nearest patterns.toml manifest supplies the include list and
// its compile defaults for any flag the user left unset.
func batchDirs(cmd *cobra.Command, args []string, jobs *int, useCache *bool) ([]string, error) {
	if len(args) == 1 {
		return []string{args[0]}, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, ok, err := project.FindManifest(cwd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no %s found in %s or any parent (pass a directory instead)", project.ManifestName, cwd)
	}
	m, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("jobs") && m.Compile.Jobs > 0 {
		*jobs = m.Compile.Jobs
	}
	if !cmd.Flags().Changed("cache") && m.Compile.Cache {
		*useCache = true
	}
	return m.IncludeDirs(), nil
}

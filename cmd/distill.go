package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nkuzmik/slidedistill/internal/cache"
	"github.com/nkuzmik/slidedistill/internal/classify"
	"github.com/nkuzmik/slidedistill/internal/pdf"
	"github.com/nkuzmik/slidedistill/internal/phash"
	"github.com/nkuzmik/slidedistill/internal/store"
	"github.com/nkuzmik/slidedistill/internal/types"
	"github.com/nkuzmik/slidedistill/internal/utils"
	"github.com/nkuzmik/slidedistill/internal/worker"
)

var distillOpts Options

var distillCmd = &cobra.Command{
	Use:   "distill",
	Short: "Collapse a screenshot sequence into one PDF of distinct slides",
	Run: func(cmd *cobra.Command, args []string) {
		runDistill(cmd.Context(), distillOpts)
	},
}

func init() {
	distillCmd.Flags().StringVarP(&distillOpts.InputDir, "input", "i", "", "Directory of ordered slide screenshots (e.g. 1.jpg, 2.jpg...)")
	distillCmd.Flags().StringVarP(&distillOpts.OutputPath, "output", "o", "", "Output PDF path (default: derived from the input directory name)")
	distillCmd.Flags().IntVarP(&distillOpts.Animation, "animation-threshold", "a", Cfg.AnimationThreshold, "Max Hamming distance treated as a duplicate frame")
	distillCmd.Flags().IntVarP(&distillOpts.NewSlide, "new-slide-threshold", "s", Cfg.NewSlideThreshold, "Max Hamming distance still treated as the same slide; beyond it a new slide begins")
	distillCmd.Flags().IntVarP(&distillOpts.Workers, "workers", "w", Cfg.Workers, "Number of parallel hashing workers")
	distillCmd.Flags().BoolVar(&distillOpts.NoCache, "no-cache", false, "Bypass the local fingerprint cache")
	distillCmd.Flags().BoolVar(&distillOpts.Archive, "archive", false, "Record the run in the archive database")

	distillCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(distillCmd)
}

// runDistill orchestrates the pipeline: frame discovery, parallel fingerprint
// acquisition, slide classification, PDF assembly, and the optional archive.
func runDistill(ctx context.Context, opts Options) {
	validateDistillFlags(&opts)

	// 1. Discover frames in capture order (natural numeric sort)
	paths, err := utils.ListImageFiles(opts.InputDir)
	if err != nil {
		utils.Die("Failed to read input directory", err)
	}
	if len(paths) == 0 {
		utils.Die("No image files found in input directory", fmt.Errorf("nothing matching *.jpg, *.jpeg, *.png in %s", opts.InputDir))
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = utils.DeriveOutputPath(opts.InputDir)
	}

	fmt.Fprintf(os.Stderr, "🖼️  Found %d frames in %s\n", len(paths), opts.InputDir)
	fmt.Fprintf(os.Stderr, "⚙️  Spawning %d hashing workers (duplicate ≤ %d, reveal ≤ %d)\n", opts.Workers, opts.Animation, opts.NewSlide)

	// 2. Fingerprint cache (best effort: trouble degrades to plain hashing)
	var fpCache *cache.Cache
	if !opts.NoCache {
		cachePath := Cfg.ResolveCachePath()
		fpCache, err = cache.Open(cachePath)
		if err != nil {
			slog.Warn("fingerprint cache unavailable, hashing everything", "path", cachePath, "error", err)
			fpCache = nil
		} else {
			defer fpCache.Close()
		}
	}

	// 3. Parallel fingerprint acquisition, re-assembled into capture order
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("🔍 Hashing frames"),
		progressbar.OptionSetWriter(os.Stderr), // Write bar to Stderr
		progressbar.OptionShowCount(),
	)

	skipped := 0
	pool := &worker.Pool{
		Workers: opts.Workers,
		Hash:    cachedHasher(ctx, fpCache),
		OnResult: func(res types.HashResult) {
			bar.Add(1)
			if res.Err != nil {
				skipped++
				slog.Warn("skipping unreadable frame", "path", res.Path, "error", res.Err)
			}
		},
	}
	frames, err := pool.Run(ctx, paths)
	if err != nil {
		utils.Die("Fingerprint acquisition aborted", err)
	}
	bar.Finish()

	// 4. Single-pass slide classification
	classBar := progressbar.NewOptions(len(frames),
		progressbar.OptionSetDescription("🧮 Classifying"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	thresholds := classify.Thresholds{Animation: opts.Animation, NewSlide: opts.NewSlide}
	selected, err := classify.Classify(frames, thresholds, func(done, total int) {
		classBar.Set(done)
	})
	if err != nil {
		utils.Die("Classification failed", err)
	}
	classBar.Finish()

	if len(selected) == 0 {
		// Not an error: every frame failed acquisition, there is nothing to build.
		fmt.Fprintf(os.Stderr, "\n🫙 No readable frames after acquisition; no document produced.\n")
		return
	}

	// 5. Map representative indices back to source files
	slidePaths := make([]string, len(selected))
	for i, idx := range selected {
		slidePaths[i] = frames[idx].Source
	}

	// 6. Assemble the document. Assembly failure is fatal and leaves no
	// partial output behind.
	fmt.Fprintf(os.Stderr, "\n📄 Assembling %d slides into %s\n", len(selected), outPath)
	if err := pdf.Assemble(slidePaths, outPath); err != nil {
		utils.Die("PDF assembly failed", err)
	}

	// 7. Optional run archive
	if opts.Archive {
		archiveRun(ctx, opts, outPath, frames, selected, len(paths))
	}

	// 8. Summary
	fmt.Fprintf(os.Stderr, "\n---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "📊 DISTILL SUMMARY\n")
	fmt.Fprintf(os.Stderr, "---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "🖼️  Frames in:      %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "📑 Slides out:     %d\n", len(selected))
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "⚠️  Frames skipped: %d (unreadable)\n", skipped)
	}
	fmt.Fprintf(os.Stderr, "📄 Output:         %s\n", outPath)
	fmt.Fprintf(os.Stderr, "🏁 Done.\n")
}

// cachedHasher builds the acquisition function: cache lookup, then
// decode+hash, then cache store. Cache failures only cost the shortcut.
func cachedHasher(ctx context.Context, fpCache *cache.Cache) worker.Hasher {
	return func(path string) (classify.Fingerprint, error) {
		var key string
		if fpCache != nil {
			if k, err := utils.FileKey(path); err == nil {
				key = k
				if bits, ok, err := fpCache.Lookup(ctx, key); err == nil && ok {
					return phash.FromUint64(bits), nil
				}
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		fp, err := phash.Compute(data)
		if err != nil {
			return nil, err
		}

		if fpCache != nil && key != "" {
			if err := fpCache.Store(ctx, key, fp.Uint64()); err != nil {
				slog.Debug("cache store failed", "path", path, "error", err)
			}
		}
		return fp, nil
	}
}

// archiveRun records the completed run and its slide sequence.
func archiveRun(ctx context.Context, opts Options, outPath string, frames []classify.Frame, selected []int, framesIn int) {
	db := openArchive(ctx)
	defer db.Close(context.Background())

	slides := make([]store.Slide, len(selected))
	for i, idx := range selected {
		sl := store.Slide{Position: i, FrameIndex: idx, Source: frames[idx].Source}
		if fp, ok := frames[idx].Hash.(*phash.Fingerprint); ok {
			sl.Fingerprint = fp.Uint64()
		}
		slides[i] = sl
	}

	runID, err := db.RecordRun(ctx, store.Run{
		InputDir:  opts.InputDir,
		Output:    outPath,
		FramesIn:  framesIn,
		SlidesOut: len(selected),
	}, slides)
	if err != nil {
		utils.Die("Failed to archive run", err)
	}
	fmt.Fprintf(os.Stderr, "🗃️  Run archived as #%d\n", runID)
}

// validateDistillFlags ensures all CLI arguments are valid before starting heavy processing.
func validateDistillFlags(opts *Options) {
	info, err := os.Stat(opts.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			utils.Die("Input directory does not exist", err)
		}
		utils.Die("Unable to access input directory", err)
	}
	if !info.IsDir() {
		utils.Die("Input path is a file, expected a directory of screenshots", nil)
	}

	thresholds := classify.Thresholds{Animation: opts.Animation, NewSlide: opts.NewSlide}
	if err := thresholds.Validate(); err != nil {
		utils.Die("Invalid threshold configuration", err)
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}
}

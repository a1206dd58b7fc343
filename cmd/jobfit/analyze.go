package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GetFractional/Job-Hunter-sub002/internal/candidates"
	"github.com/GetFractional/Job-Hunter-sub002/internal/ingestion"
	"github.com/GetFractional/Job-Hunter-sub002/internal/observability"
	"github.com/GetFractional/Job-Hunter-sub002/internal/pipeline"
	"github.com/GetFractional/Job-Hunter-sub002/internal/profile"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

var (
	analyzeProfile     string
	analyzeHTML        bool
	analyzeConcurrency int
)

// Files with these extensions are picked up when a directory is
// analyzed.
var postingExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path ...]",
	Short: "Extract requirements from job postings",
	Long: `Analyze reads job postings from files, directories, or stdin, extracts
the skills and tools they ask for, and prints the result. With a
profile the posting is also scored against your skill inventory.
HTML files are detected by extension; use --html for HTML on stdin.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", "", "path to the user profile JSON (overrides the config default)")
	analyzeCmd.Flags().BoolVar(&analyzeHTML, "html", false, "treat stdin as an HTML document")
	analyzeCmd.Flags().IntVarP(&analyzeConcurrency, "concurrency", "c", 4, "postings analyzed in parallel")
	rootCmd.AddCommand(analyzeCmd)
}

// analysisOutput pairs one input with its result for batch output.
type analysisOutput struct {
	Path     string                `json:"path"`
	Analysis *types.AnalysisResult `json:"analysis,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func runAnalyze(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	profilePath := analyzeProfile
	if profilePath == "" {
		profilePath = cfg.Profile
	}
	var userProfile *types.UserProfile
	if profilePath != "" {
		if userProfile, err = profile.Load(profilePath); err != nil {
			return err
		}
	}

	store, err := candidates.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open candidate store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	analyzer, err := pipeline.New(cfg, candidates.NewManager(store), log)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return analyzeStdin(ctx, analyzer, userProfile)
	}

	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}

	outputs := make([]analysisOutput, len(inputs))
	limit := analyzeConcurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range inputs {
		g.Go(func() error {
			result, err := analyzeFile(gctx, analyzer, userProfile, path)
			if err != nil {
				log.Warn("analysis failed", zap.String("path", path), zap.Error(err))
				outputs[i] = analysisOutput{Path: path, Error: err.Error()}
				return nil
			}
			outputs[i] = analysisOutput{Path: path, Analysis: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := emitOutputs(outputs); err != nil {
		return err
	}

	failed := 0
	for _, out := range outputs {
		if out.Error != "" {
			failed++
		}
	}
	if failed == len(outputs) {
		return fmt.Errorf("all %d postings failed to analyze", failed)
	}
	if failed > 0 {
		log.Warn("some postings failed to analyze",
			zap.Int("failed", failed), zap.Int("total", len(outputs)))
	}
	return nil
}

func analyzeStdin(ctx context.Context, analyzer *pipeline.Analyzer, userProfile *types.UserProfile) error {
	text, err := ingestion.FromReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if analyzeHTML {
		if text, err = ingestion.FromHTML(text); err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}
	}

	result, err := analyzer.Analyze(ctx, text, userProfile)
	if err != nil {
		return err
	}
	return emitOutputs([]analysisOutput{{Path: "stdin", Analysis: result}})
}

func analyzeFile(ctx context.Context, analyzer *pipeline.Analyzer, userProfile *types.UserProfile, path string) (*types.AnalysisResult, error) {
	text, err := ingestion.FromFile(path)
	if err != nil {
		return nil, err
	}
	return analyzer.Analyze(ctx, text, userProfile)
}

// expandInputs resolves the argument list, walking directories one
// level deep for posting files.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !postingExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			inputs = append(inputs, filepath.Join(arg, entry.Name()))
		}
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no posting files found")
	}
	return inputs, nil
}

func emitOutputs(outputs []analysisOutput) error {
	if jsonOutput() {
		if len(outputs) == 1 {
			return encodeJSON(outputs[0])
		}
		return encodeJSON(outputs)
	}

	printer := observability.NewPrinter(os.Stdout)
	for _, out := range outputs {
		if len(outputs) > 1 {
			fmt.Printf("\n%s\n", out.Path)
		}
		if out.Error != "" {
			fmt.Printf("error: %s\n", out.Error)
			continue
		}
		printer.PrintAnalysis(out.Analysis)
	}
	return nil
}

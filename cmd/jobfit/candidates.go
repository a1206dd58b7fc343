package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/GetFractional/Job-Hunter-sub002/internal/candidates"
	"github.com/GetFractional/Job-Hunter-sub002/internal/observability"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

const (
	promptYes = "Yes"
	promptNo  = "No"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Review phrases the classifier could not place",
	Long: `Candidates are extracted phrases that matched nothing in the
vocabulary. Review them with feedback: accept or reject closes the
question, classify teaches the analyzer a new skill or tool.`,
}

var (
	listPending bool
	listSort    string
	listByType  bool
)

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List review candidates",
	RunE:  runCandidatesList,
}

var exportOutput string

var candidatesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all candidates as JSON",
	RunE:  runCandidatesExport,
}

var (
	feedbackAction string
	feedbackAs     string
	feedbackNote   string
)

var candidatesFeedbackCmd = &cobra.Command{
	Use:   "feedback <candidate-id>",
	Short: "Record a review decision for one candidate",
	Args:  cobra.ExactArgs(1),
	RunE:  runCandidatesFeedback,
}

var clearYes bool

var candidatesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every candidate from the store",
	RunE:  runCandidatesClear,
}

func init() {
	candidatesListCmd.Flags().BoolVar(&listPending, "pending", false, "only candidates without feedback")
	candidatesListCmd.Flags().StringVar(&listSort, "sort", "", "sort order: priority (least certain first) or frequency")
	candidatesListCmd.Flags().BoolVar(&listByType, "by-type", false, "group candidates by inferred type")

	candidatesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")

	candidatesFeedbackCmd.Flags().StringVar(&feedbackAction, "action", "", "accept, reject, or classify")
	candidatesFeedbackCmd.Flags().StringVar(&feedbackAs, "as", "", "bucket for classify: core_skill or tool")
	candidatesFeedbackCmd.Flags().StringVar(&feedbackNote, "note", "", "optional reviewer note")
	candidatesFeedbackCmd.MarkFlagRequired("action")

	candidatesClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")

	candidatesCmd.AddCommand(candidatesListCmd, candidatesExportCmd, candidatesFeedbackCmd, candidatesClearCmd)
	rootCmd.AddCommand(candidatesCmd)
}

// openManager opens the configured candidate store. The caller closes
// the returned store.
func openManager(ctx context.Context) (*candidates.Manager, candidates.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := candidates.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open candidate store: %w", err)
	}
	return candidates.NewManager(store), store, nil
}

func runCandidatesList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	manager, store, err := openManager(ctx)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	if listByType {
		groups, err := manager.GroupByInferredType(ctx)
		if err != nil {
			return err
		}
		if jsonOutput() {
			return encodeJSON(groups)
		}
		printer := observability.NewPrinter(os.Stdout)
		for _, itemType := range []types.ItemType{types.TypeCoreSkill, types.TypeTool, types.TypeCandidate} {
			group := groups[itemType]
			if len(group) == 0 {
				continue
			}
			fmt.Printf("\n%s\n", itemType)
			printer.PrintCandidates(group)
		}
		return nil
	}

	var list []types.Candidate
	switch listSort {
	case "":
		list, err = manager.List(ctx)
	case "priority":
		list, err = manager.ByReviewPriority(ctx)
	case "frequency":
		list, err = manager.ByFrequency(ctx)
	default:
		return fmt.Errorf("unknown sort order %q, expected priority or frequency", listSort)
	}
	if err != nil {
		return err
	}

	if listPending {
		pending := list[:0]
		for _, c := range list {
			if c.Feedback == nil {
				pending = append(pending, c)
			}
		}
		list = pending
	}
	if list == nil {
		list = []types.Candidate{}
	}

	if jsonOutput() {
		return encodeJSON(list)
	}
	observability.NewPrinter(os.Stdout).PrintCandidates(list)
	return nil
}

func runCandidatesExport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	manager, store, err := openManager(ctx)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}
	return manager.Export(ctx, out)
}

func runCandidatesFeedback(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate ID %q", args[0])
	}

	feedback := types.CandidateFeedback{
		Action: types.FeedbackAction(feedbackAction),
		Note:   feedbackNote,
	}
	if feedbackAs != "" {
		itemType, ok := types.ParseItemType(feedbackAs)
		if !ok {
			return fmt.Errorf("unknown bucket %q, expected core_skill or tool", feedbackAs)
		}
		feedback.ClassifiedAs = itemType
	}

	manager, store, err := openManager(ctx)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	candidate, err := manager.ApplyFeedback(ctx, id, feedback)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return encodeJSON(candidate)
	}
	fmt.Printf("recorded %s for %q\n", feedback.Action, candidate.Raw)
	if feedback.Action == types.FeedbackClassify {
		fmt.Printf("%q will resolve as %s in future analyses\n", candidate.Raw, feedback.ClassifiedAs)
	}
	return nil
}

func runCandidatesClear(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	manager, store, err := openManager(ctx)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	if !clearYes {
		prompt := promptui.Select{
			Label: "Remove every review candidate?",
			Items: []string{promptNo, promptYes},
		}
		_, answer, err := prompt.Run()
		if err != nil {
			return err
		}
		if answer != promptYes {
			return nil
		}
	}

	removed, err := manager.Clear(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("removed %d candidate(s)\n", removed)
	return nil
}

package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Reading progress and spoiler settings",
	Long: `Record the last chapter you have read. Content past that chapter is hidden
unless a spoiler override is set.`,
}

var progressSetCmd = &cobra.Command{
	Use:   "set <chapter>",
	Short: "Set the last chapter you have read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, err := parseChapter(args[0])
		if err != nil {
			return err
		}
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		me, err := c.UpdateProgress(cmd.Context(), chapter)
		if err != nil {
			return fmt.Errorf("progress update failed: %w", err)
		}
		okColor.Fprintf(cmd.OutOrStdout(), "✓ Progress set to chapter %d\n", me.UserProgress)
		return nil
	},
}

var progressOverrideCmd = &cobra.Command{
	Use:   "override <chapter|clear>",
	Short: "Show content up to a chapter regardless of progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var chapter *int
		if args[0] != "clear" {
			n, err := parseChapter(args[0])
			if err != nil {
				return err
			}
			chapter = &n
		}
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		me, err := c.SetSpoilerOverride(cmd.Context(), chapter)
		if err != nil {
			return fmt.Errorf("settings update failed: %w", err)
		}
		if me.SpoilerChapterOverride == nil {
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Override cleared, using progress (chapter %d)\n", me.UserProgress)
			return nil
		}
		okColor.Fprintf(cmd.OutOrStdout(), "✓ Override set to chapter %d\n", *me.SpoilerChapterOverride)
		return nil
	},
}

func parseChapter(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("chapter must be a non-negative number, got %q", s)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressSetCmd, progressOverrideCmd)
}

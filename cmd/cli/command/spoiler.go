package command

import (
	"fmt"
	"io"
	"strconv"

	"mangafandb/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var spoilersCmd = &cobra.Command{
	Use:   "spoilers",
	Short: "Chapter spoiler tools",
}

var spoilersCheckCmd = &cobra.Command{
	Use:   "check <id>...",
	Short: "Check which chapter spoilers are safe to open",
	Long: `Asks the server which of the given chapter spoilers you may read. Uses
--progress when given, otherwise your stored progress (or --spoiler-chapter).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int64, 0, len(args))
		for _, a := range args {
			id, err := strconv.ParseInt(a, 10, 64)
			if err != nil || id < 1 {
				return fmt.Errorf("invalid spoiler id %q", a)
			}
			ids = append(ids, id)
		}

		var progress *int
		if cmd.Flags().Changed("progress") {
			p, _ := cmd.Flags().GetInt("progress")
			progress = &p
		} else {
			progress = spoilerOverride()
		}

		resp, err := optionalClient(cmd.Context()).CheckSpoilers(cmd.Context(), ids, progress)
		if err != nil {
			return err
		}
		renderViewable(cmd.OutOrStdout(), resp)
		return nil
	},
}

func renderViewable(w io.Writer, resp *dto.CheckViewableResponse) {
	dimColor.Fprintf(w, "reading progress: chapter %d\n", resp.UserProgress)
	for _, r := range resp.Results {
		switch {
		case !r.Found:
			dimColor.Fprintf(w, "%6d  not found\n", r.ID)
		case r.CanView:
			okColor.Fprintf(w, "%6d  safe to read\n", r.ID)
		default:
			warnColor.Fprintf(w, "%6d  locked until chapter %d\n", r.ID, r.MinimumChapter)
		}
	}
}

func init() {
	rootCmd.AddCommand(spoilersCmd)
	spoilersCmd.AddCommand(spoilersCheckCmd)
	spoilersCheckCmd.Flags().Int("progress", 0, "check against this chapter instead of your stored progress")
}

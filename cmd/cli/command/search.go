package command

import (
	"fmt"
	"io"
	"strings"

	"mangafandb/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search characters, arcs, gambles and events",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		resp, err := optionalClient(cmd.Context()).Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		renderSearch(cmd.OutOrStdout(), resp)
		return nil
	},
}

func renderSearch(w io.Writer, resp *dto.SearchResponse) {
	if len(resp.Hits) == 0 {
		dimColor.Fprintf(w, "Nothing matches %q.\n", resp.Query)
		return
	}
	for _, h := range resp.Hits {
		dimColor.Fprintf(w, "%-10s %5d  ", h.Kind, h.ID)
		if h.SpoilerHidden {
			warnColor.Fprintf(w, "%s (spoiler, ch. %d)\n", h.Title, h.Chapter)
			continue
		}
		fmt.Fprintln(w, h.Title)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Int("limit", 10, "results per kind (max 50)")
}

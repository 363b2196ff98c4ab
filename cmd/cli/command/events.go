package command

import (
	"fmt"
	"io"

	"mangafandb/cmd/cli/command/client"
	"mangafandb/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse story events",
	Long: `List events and the arc timeline. Events past your reading progress are shown
with their chapter but without a description.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events in chapter order",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := eventQueryFromFlags(cmd)
		if err != nil {
			return err
		}
		page, err := optionalClient(cmd.Context()).ListEvents(cmd.Context(), q)
		if err != nil {
			return err
		}
		renderEvents(cmd.OutOrStdout(), page)
		return nil
	},
}

var eventsTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show events grouped by arc and gamble",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := eventQueryFromFlags(cmd)
		if err != nil {
			return err
		}
		tl, err := optionalClient(cmd.Context()).Timeline(cmd.Context(), q)
		if err != nil {
			return err
		}
		renderTimeline(cmd.OutOrStdout(), tl)
		return nil
	},
}

func eventQueryFromFlags(cmd *cobra.Command) (client.EventQuery, error) {
	f := cmd.Flags()
	q := client.EventQuery{SpoilerChapter: spoilerOverride()}
	q.ArcID, _ = f.GetInt64("arc")
	q.GambleID, _ = f.GetInt64("gamble")
	q.CharacterID, _ = f.GetInt64("character")
	q.ChapterFrom, _ = f.GetInt("from")
	q.ChapterTo, _ = f.GetInt("to")
	q.Type, _ = f.GetString("type")
	q.Search, _ = f.GetString("search")
	q.Page, _ = f.GetInt("page")
	q.Limit, _ = f.GetInt("limit")
	if q.ChapterFrom > 0 && q.ChapterTo > 0 && q.ChapterFrom > q.ChapterTo {
		return q, fmt.Errorf("--from (%d) is after --to (%d)", q.ChapterFrom, q.ChapterTo)
	}
	return q, nil
}

func renderEvents(w io.Writer, page *dto.PageResponse[dto.EventResponse]) {
	if len(page.Data) == 0 {
		dimColor.Fprintln(w, "No events.")
		return
	}
	for _, e := range page.Data {
		fmt.Fprintf(w, "%5s  ", fmt.Sprintf("#%d", e.ChapterNumber))
		titleColor.Fprint(w, e.Title)
		dimColor.Fprintf(w, "  [%s]\n", e.Type)
		if e.SpoilerHidden {
			warnColor.Fprintf(w, "       spoiler hidden until chapter %d\n", spoilerGate(e.SpoilerChapter, e.ChapterNumber))
			continue
		}
		if e.Description != "" {
			fmt.Fprintf(w, "       %s\n", e.Description)
		}
	}
	dimColor.Fprintf(w, "page %d of %d (%d events)\n", page.Page, page.TotalPages, page.Total)
}

func renderTimeline(w io.Writer, tl *dto.TimelineResponse) {
	if len(tl.Arcs) == 0 {
		dimColor.Fprintln(w, "No events.")
		return
	}
	for _, arc := range tl.Arcs {
		name := arc.ArcName
		if name == "" {
			name = "Unassigned"
		}
		titleColor.Fprintf(w, "%s (ch. %d-%d)\n", name, arc.StartChapter, arc.EndChapter)
		for _, s := range arc.Sections {
			dimColor.Fprintf(w, "  ┌ %s ch. %d-%d\n", s.Kind, s.StartChapter, s.EndChapter)
			for _, e := range s.Events {
				line := fmt.Sprintf("  │ #%d %s [%s]", e.ChapterNumber, e.Title, e.Type)
				if e.SpoilerHidden {
					warnColor.Fprintf(w, "%s (spoiler until ch. %d)\n", line, spoilerGate(e.SpoilerChapter, e.ChapterNumber))
					continue
				}
				fmt.Fprintln(w, line)
			}
		}
	}
	dimColor.Fprintf(w, "showing content up to chapter %d\n", tl.EffectiveProgress)
}

func spoilerGate(spoilerChapter *int, chapter int) int {
	if spoilerChapter != nil {
		return *spoilerChapter
	}
	return chapter
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsTimelineCmd)

	for _, c := range []*cobra.Command{eventsListCmd, eventsTimelineCmd} {
		c.Flags().Int64("arc", 0, "only events of this arc id")
		c.Flags().Int64("gamble", 0, "only events of this gamble id")
		c.Flags().Int64("character", 0, "only events involving this character id")
		c.Flags().Int("from", 0, "first chapter")
		c.Flags().Int("to", 0, "last chapter")
		c.Flags().String("type", "", "gamble, decision, reveal, shift or resolution")
	}
	eventsListCmd.Flags().String("search", "", "match title or description")
	eventsListCmd.Flags().Int("page", 1, "page number")
	eventsListCmd.Flags().Int("limit", 20, "events per page (max 100)")
}

package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mangafandb/cmd/cli/command/client"
	"mangafandb/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var moderationCmd = &cobra.Command{
	Use:     "moderation",
	Aliases: []string{"mod"},
	Short:   "Review community submissions (moderators only)",
}

var moderationQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Count submissions awaiting review",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		q, err := c.ModerationQueue(cmd.Context())
		if err != nil {
			return err
		}
		renderQueue(cmd.OutOrStdout(), q)
		return nil
	},
}

var moderationApproveCmd = &cobra.Command{
	Use:   "approve <" + strings.Join(client.Reviewable, "|") + "> <id>",
	Short: "Approve a submission",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		item, err := c.Approve(cmd.Context(), args[0], id)
		if err != nil {
			return fmt.Errorf("approve failed: %w", err)
		}
		okColor.Fprintf(cmd.OutOrStdout(), "✓ %s %d is %s\n", args[0], item.ID, item.Status)
		return nil
	},
}

var moderationRejectCmd = &cobra.Command{
	Use:   "reject <" + strings.Join(client.Reviewable, "|") + "> <id> --reason <text>",
	Short: "Reject a pending submission",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")
		if strings.TrimSpace(reason) == "" {
			return fmt.Errorf("--reason is required")
		}
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		item, err := c.Reject(cmd.Context(), args[0], id, reason)
		if err != nil {
			return fmt.Errorf("reject failed: %w", err)
		}
		okColor.Fprintf(cmd.OutOrStdout(), "✓ %s %d is %s\n", args[0], item.ID, item.Status)
		return nil
	},
}

func renderQueue(w io.Writer, q *dto.ModerationQueue) {
	titleColor.Fprintf(w, "%d awaiting review\n", q.Total)
	fmt.Fprintf(w, "  guides       %d\n", q.Guides)
	fmt.Fprintf(w, "  annotations  %d\n", q.Annotations)
	fmt.Fprintf(w, "  media        %d\n", q.Media)
	fmt.Fprintf(w, "  events       %d\n", q.Events)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(moderationCmd)
	moderationCmd.AddCommand(moderationQueueCmd, moderationApproveCmd, moderationRejectCmd)
	moderationRejectCmd.Flags().String("reason", "", "why the submission is rejected")
}

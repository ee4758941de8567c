package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	consolerender "github.com/bnema/deck/internal/adapters/render/console"
	"github.com/bnema/deck/internal/application"
	"github.com/bnema/deck/internal/domain"
)

func newThreadCmd(ref *appRef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread",
		Short: "Manage conversation threads",
	}

	cmd.AddCommand(
		newThreadListCmd(ref),
		newThreadGetCmd(ref),
		newThreadCreateCmd(ref),
	)

	return cmd
}

func newThreadListCmd(ref *appRef) *cobra.Command {
	var projectID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List threads, optionally of one project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope := ""
			if projectID != "" {
				scope = "project " + projectID
			}
			threads, err := fetchList(cmd, asJSON, listTarget("thread", "threads", scope),
				func(ctx context.Context) ([]domain.Thread, error) {
					return ref.app.service.GetThreads(ctx, domain.ProjectID(projectID))
				})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, threads)
			}
			rendered, err := consolerender.RenderThreads(threads, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only threads of this project")
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newThreadGetCmd(ref *appRef) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <thread-id>",
		Short: "Show a thread with its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := fetchOne(cmd, asJSON, oneTarget("thread", args[0]),
				func(ctx context.Context) (application.ThreadView, error) {
					return ref.app.service.GetThreadView(ctx, domain.ThreadID(args[0]))
				})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, view)
			}
			rendered, err := consolerender.RenderThreadView(view, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newThreadCreateCmd(ref *appRef) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a thread in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			thread, err := ref.app.service.CreateThread(cmd.Context(), domain.ProjectID(projectID))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), thread.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

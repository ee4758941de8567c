package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	consolerender "github.com/bnema/deck/internal/adapters/render/console"
	"github.com/bnema/deck/internal/application"
	"github.com/bnema/deck/internal/domain"
)

func newAgentCmd(ref *appRef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start, stop and follow agent runs",
	}

	cmd.AddCommand(
		newAgentStartCmd(ref),
		newAgentStopCmd(ref),
		newAgentStatusCmd(ref),
		newAgentRunsCmd(ref),
		newAgentStreamCmd(ref),
	)

	return cmd
}

func newAgentStartCmd(ref *appRef) *cobra.Command {
	var opts domain.StartAgentOptions
	var message string
	var follow bool

	cmd := &cobra.Command{
		Use:   "start <thread-id>",
		Short: "Start an agent run on a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID := domain.ThreadID(args[0])
			if strings.TrimSpace(message) != "" {
				if _, err := ref.app.service.AddUserMessage(cmd.Context(), threadID, message); err != nil {
					return err
				}
			}

			runID, err := ref.app.service.StartAgent(cmd.Context(), application.StartAgentCommand{
				ThreadID: threadID,
				Options:  opts,
			})
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), runID); err != nil {
				return err
			}
			if !follow {
				return nil
			}

			return followRun(cmd, ref.app.service, runID)
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Add this user message before starting")
	cmd.Flags().StringVar(&opts.ModelName, "model", "", "Model to run the agent with")
	cmd.Flags().BoolVar(&opts.EnableThinking, "thinking", false, "Enable extended thinking")
	cmd.Flags().StringVar(&opts.ReasoningEffort, "reasoning-effort", "low", "Reasoning effort (low|medium|high)")
	cmd.Flags().BoolVar(&opts.Stream, "stream", true, "Ask the backend to stream output")
	cmd.Flags().BoolVar(&opts.EnableContextManager, "context-manager", false, "Enable the context manager")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream the run output after starting")

	return cmd
}

func newAgentStopCmd(ref *appRef) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <run-id>",
		Short: "Stop an agent run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ref.app.service.StopAgent(cmd.Context(), domain.AgentRunID(args[0]))
		},
	}
}

func newAgentStatusCmd(ref *appRef) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status <run-id>",
		Short: "Show the status of an agent run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := ref.app.service.GetAgentStatus(cmd.Context(), domain.AgentRunID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, run)
			}
			rendered, err := consolerender.RenderRun(run, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newAgentRunsCmd(ref *appRef) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs <thread-id>",
		Short: "List the agent runs of a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID := domain.ThreadID(args[0])
			runs, err := fetchList(cmd, asJSON, listTarget("agent run", "agent runs", "thread "+args[0]),
				func(ctx context.Context) ([]domain.AgentRun, error) {
					return ref.app.service.GetAgentRuns(ctx, threadID)
				})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, runs)
			}
			rendered, err := consolerender.RenderRuns(runs, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newAgentStreamCmd(ref *appRef) *cobra.Command {
	return &cobra.Command{
		Use:   "stream <run-id>",
		Short: "Print the output of an agent run as it arrives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return followRun(cmd, ref.app.service, domain.AgentRunID(args[0]))
		},
	}
}

// followRun prints frames until the run ends or the command is interrupted.
// Transient stream errors are reported on stderr; a lost stream fails.
func followRun(cmd *cobra.Command, service *application.Service, runID domain.AgentRunID) error {
	ctx := cmd.Context()
	var lost error

	for update := range service.WatchAgent(ctx, runID) {
		if update.Err != nil {
			if errors.Is(update.Err, domain.ErrStreamLost) {
				lost = update.Err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "stream error: %v\n", update.Err)
			continue
		}

		line := consolerender.FormatFrame(update.Frame)
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}

	if lost != nil {
		return fmt.Errorf("follow run %s: %w", runID, lost)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}

	return ctx.Err()
}

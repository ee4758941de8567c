package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, ref := newRootCmd()
	defer ref.Close()

	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd builds the command tree. The app is wired lazily before
// the first command that needs it, so `deck version` works without config.
func newRootCmd() (*cobra.Command, *appRef) {
	ref := &appRef{}

	rootCmd := &cobra.Command{
		Use:           "deck",
		Short:         "deck: drive agent runs from the terminal",
		Long:          "deck manages projects, threads and messages, starts and stops agent runs, streams their output and browses sandbox files.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}
			return ref.wire(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(ref),
		newProjectCmd(ref),
		newThreadCmd(ref),
		newMessageCmd(ref),
		newAgentCmd(ref),
		newFilesCmd(ref),
		newDBCmd(ref),
	)

	return rootCmd, ref
}

const annotationNoApp = "deck/no-app"

func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoApp] == "true" || c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}

	return true
}

// appRef hands the lazily wired app to subcommands.
type appRef struct {
	app *app
}

func (r *appRef) wire(ctx context.Context) error {
	if r.app != nil {
		return nil
	}

	a, err := wireApp(ctx)
	if err != nil {
		return err
	}
	r.app = a

	return nil
}

func (r *appRef) Close() {
	r.app.Close()
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	consolerender "github.com/bnema/deck/internal/adapters/render/console"
	"github.com/bnema/deck/internal/domain"
)

func newMessageCmd(ref *appRef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Read and add thread messages",
	}

	cmd.AddCommand(newMessageListCmd(ref), newMessageAddCmd(ref))

	return cmd
}

func newMessageListCmd(ref *appRef) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <thread-id>",
		Short: "List the visible messages of a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := ref.app.service.GetMessages(cmd.Context(), domain.ThreadID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, messages)
			}
			rendered, err := consolerender.RenderMessages(messages, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newMessageAddCmd(ref *appRef) *cobra.Command {
	return &cobra.Command{
		Use:   "add <thread-id> <text...>",
		Short: "Add a user message to a thread",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := ref.app.service.AddUserMessage(cmd.Context(), domain.ThreadID(args[0]), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg.ID)
			return err
		},
	}
}

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	consolerender "github.com/bnema/deck/internal/adapters/render/console"
)

func newAuthCmd(ref *appRef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the session access token",
	}

	cmd.AddCommand(newAuthSetTokenCmd(ref), newAuthRemoveCmd(ref), newAuthStatusCmd(ref))

	return cmd
}

func newAuthSetTokenCmd(ref *appRef) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "set-token [token]",
		Short: "Store the access token used for the database and the backend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(cmd, args, fromStdin)
			if err != nil {
				return err
			}

			session, err := ref.app.service.SetAccessToken(cmd.Context(), token)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", session.UserID)
			return err
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the token from stdin")

	return cmd
}

func readToken(cmd *cobra.Command, args []string, fromStdin bool) (string, error) {
	switch {
	case len(args) == 1 && fromStdin:
		return "", errors.New("pass the token as an argument or with --stdin, not both")
	case len(args) == 1:
		return args[0], nil
	case fromStdin:
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return "", fmt.Errorf("read token from stdin: %w", err)
		}
		return strings.TrimSpace(line), nil
	default:
		return "", errors.New("access token required: pass it as an argument or with --stdin")
	}
}

func newAuthRemoveCmd(ref *appRef) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ref.app.service.RemoveAccessToken(cmd.Context())
		},
	}
}

func newAuthStatusCmd(ref *appRef) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show who the stored token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := ref.app.service.GetAuthStatus(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, status)
			}
			rendered, err := consolerender.RenderAuthStatus(status, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	addJSONFlag(cmd, &asJSON)

	return cmd
}

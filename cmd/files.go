package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	consolerender "github.com/bnema/deck/internal/adapters/render/console"
	"github.com/bnema/deck/internal/domain"
)

type sandboxFlags struct {
	projectID string
	sandboxID string
}

func (f *sandboxFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectID, "project", "", "Use the sandbox of this project")
	cmd.Flags().StringVar(&f.sandboxID, "sandbox", "", "Sandbox ID")
	cmd.MarkFlagsMutuallyExclusive("project", "sandbox")
	cmd.MarkFlagsOneRequired("project", "sandbox")
}

func (f *sandboxFlags) resolve(ctx context.Context, ref *appRef) (domain.SandboxID, error) {
	if f.sandboxID != "" {
		return domain.SandboxID(f.sandboxID), nil
	}

	return ref.app.service.ProjectSandbox(ctx, domain.ProjectID(f.projectID))
}

func newFilesCmd(ref *appRef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Browse and edit sandbox files",
	}

	cmd.AddCommand(newFilesListCmd(ref), newFilesCatCmd(ref), newFilesPutCmd(ref))

	return cmd
}

func newFilesListCmd(ref *appRef) *cobra.Command {
	var target sandboxFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List a sandbox directory (defaults to /workspace)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := domain.SandboxWorkspaceRoot
			if len(args) == 1 {
				dir = args[0]
			}

			files, err := fetchList(cmd, asJSON, listTarget("file", "files", dir),
				func(ctx context.Context) ([]domain.SandboxFile, error) {
					sandboxID, err := target.resolve(ctx, ref)
					if err != nil {
						return nil, err
					}
					return ref.app.service.ListSandboxFiles(ctx, sandboxID, dir)
				})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, files)
			}
			normalized, err := domain.NormalizeSandboxPath(dir)
			if err != nil {
				return err
			}
			rendered, err := consolerender.RenderFiles(normalized, files, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	target.register(cmd)
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newFilesCatCmd(ref *appRef) *cobra.Command {
	var target sandboxFlags

	cmd := &cobra.Command{
		Use:   "cat <path>",
		Short: "Print a sandbox file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sandboxID, err := target.resolve(cmd.Context(), ref)
			if err != nil {
				return err
			}

			content, err := ref.app.service.GetSandboxFileContent(cmd.Context(), sandboxID, args[0])
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(content.Bytes())
			return err
		},
	}
	target.register(cmd)

	return cmd
}

func newFilesPutCmd(ref *appRef) *cobra.Command {
	var target sandboxFlags
	var from string
	var content string

	cmd := &cobra.Command{
		Use:   "put <path>",
		Short: "Create or replace a sandbox file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := putPayload(cmd, from, content)
			if err != nil {
				return err
			}

			sandboxID, err := target.resolve(cmd.Context(), ref)
			if err != nil {
				return err
			}

			return ref.app.service.CreateSandboxFile(cmd.Context(), sandboxID, args[0], data)
		},
	}
	target.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "Upload this local file (- reads stdin)")
	cmd.Flags().StringVar(&content, "content", "", "Upload this text")
	cmd.MarkFlagsMutuallyExclusive("from", "content")

	return cmd
}

func putPayload(cmd *cobra.Command, from string, content string) ([]byte, error) {
	switch {
	case from == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	case from != "":
		data, err := os.ReadFile(from)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", from, err)
		}
		return data, nil
	case cmd.Flags().Changed("content"):
		return []byte(content), nil
	default:
		return nil, errors.New("nothing to upload: use --from or --content")
	}
}

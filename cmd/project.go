package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	consolerender "github.com/bnema/deck/internal/adapters/render/console"
	"github.com/bnema/deck/internal/application"
	"github.com/bnema/deck/internal/domain"
)

func newProjectCmd(ref *appRef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(ref),
		newProjectGetCmd(ref),
		newProjectCreateCmd(ref),
		newProjectRenameCmd(ref),
		newProjectDeleteCmd(ref),
	)

	return cmd
}

func newProjectListCmd(ref *appRef) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects visible to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := fetchList(cmd, asJSON, listTarget("project", "projects", ""), ref.app.service.GetProjects)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, projects)
			}
			rendered, err := consolerender.RenderProjects(projects, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newProjectGetCmd(ref *appRef) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := ref.app.service.GetProject(cmd.Context(), domain.ProjectID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, project)
			}
			rendered, err := consolerender.RenderProject(project, ref.app.render)
			return writeRendered(cmd, rendered, err)
		},
	}
	addJSONFlag(cmd, &asJSON)

	return cmd
}

func newProjectCreateCmd(ref *appRef) *cobra.Command {
	var input application.CreateProjectCommand
	var sandboxID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input.SandboxID = domain.SandboxID(sandboxID)
			project, err := ref.app.service.CreateProject(cmd.Context(), input)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, project)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), project.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&sandboxID, "sandbox", "", "Sandbox attached to the project")
	cmd.Flags().BoolVar(&input.IsPublic, "public", false, "Make the project readable by everyone")
	addJSONFlag(cmd, &asJSON)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectRenameCmd(ref *appRef) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "rename <project-id> <name>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := application.UpdateProjectCommand{
				ID:   domain.ProjectID(args[0]),
				Name: &args[1],
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}

			project, err := ref.app.service.UpdateProject(cmd.Context(), update)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", project.ID, project.Name)
			return err
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Also replace the description")

	return cmd
}

func newProjectDeleteCmd(ref *appRef) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project with its threads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ref.app.service.DeleteProject(cmd.Context(), domain.ProjectID(args[0]))
		},
	}
}

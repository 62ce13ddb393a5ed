package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"blogicum/internal/models"
	"blogicum/internal/services"

	"github.com/spf13/cobra"
)

func newCategoryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage post categories",
	}
	cmd.AddCommand(newCategoryAddCmd(opts), newCategoryListCmd(opts))
	return cmd
}

func newCategoryAddCmd(opts *options) *cobra.Command {
	var category models.Category
	var hidden bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		Long: `Add a category authors can file posts under. Posts in a hidden category
are not shown anywhere until the category is published.

Examples:
  blogctl category add --title Travel --slug travel
  blogctl category add --title Drafts --slug drafts --hidden`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category.Title == "" || category.Slug == "" {
				return errors.New("--title and --slug are required")
			}
			category.IsPublished = !hidden

			conn, closeDB, err := opts.open()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := services.NewCategoryService(conn).Create(cmd.Context(), &category); err != nil {
				return fmt.Errorf("add category %q: %w", category.Slug, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (id %d).\n", category.Slug, category.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&category.Title, "title", "", "Title")
	cmd.Flags().StringVar(&category.Slug, "slug", "", "URL slug, unique")
	cmd.Flags().StringVar(&category.Description, "description", "", "Description (markdown)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Create the category unpublished")
	return cmd
}

func newCategoryListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, closeDB, err := opts.open()
			if err != nil {
				return err
			}
			defer closeDB()
			categories, _, err := services.NewCategoryService(conn).Choices(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSLUG\tTITLE\tPUBLISHED")
			for _, c := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", c.ID, c.Slug, c.Title, c.IsPublished)
			}
			return w.Flush()
		},
	}
}

func newLocationCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage post locations",
	}

	var location models.Location
	var hidden bool
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if location.Name == "" {
				return errors.New("--name is required")
			}
			location.IsPublished = !hidden

			conn, closeDB, err := opts.open()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := services.NewCategoryService(conn).CreateLocation(cmd.Context(), &location); err != nil {
				return fmt.Errorf("add location %q: %w", location.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added location %s (id %d).\n", location.Name, location.ID)
			return nil
		},
	}
	add.Flags().StringVar(&location.Name, "name", "", "Name")
	add.Flags().BoolVar(&hidden, "hidden", false, "Create the location unpublished")

	cmd.AddCommand(add)
	return cmd
}

package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/navigation"
	"github.com/spf13/cobra"
)

type groupListOutput struct {
	FetchedAt string        `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
	Groups    []groupOutput `json:"groups" yaml:"groups"`
}

func newGroupsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List, refresh and act on duplicate groups",
	}

	cmd.AddCommand(
		newGroupsListCmd(app),
		newGroupsRefreshCmd(app),
		newGroupsRemoveCmd(app),
		newGroupsResolveCmd(app),
		newGroupsDismissCmd(app),
	)

	return cmd
}

func newGroupsListCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List the stored duplicate groups",
		Annotations: routed(navigation.RouteDuplicateGroup),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			ordered := app.groups.Ordered()
			if output == outputText {
				rendered, err := app.listRenderer(ordered, app.renderOptions())
				if err != nil {
					return fmt.Errorf("render groups: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			}

			list := groupListOutput{Groups: make([]groupOutput, 0, len(ordered))}
			if fetchedAt := app.groups.FetchedAt(); !fetchedAt.IsZero() {
				list.FetchedAt = fetchedAt.UTC().Format(time.RFC3339)
			}
			for i, group := range ordered {
				out := groupOutput{ID: string(group.ID), Position: i, Assets: make([]string, 0, len(group.Assets))}
				for _, asset := range group.Assets {
					out.Assets = append(out.Assets, string(asset))
				}
				list.Groups = append(list.Groups, out)
			}
			return writeStructured(cmd.OutOrStdout(), output, list)
		},
	}
	addOutputFlag(cmd, &output)

	return cmd
}

func newGroupsRefreshCmd(app *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:         "refresh",
		Short:       "Fetch duplicate groups from the media library",
		Annotations: routed(navigation.RouteDuplicateGroup),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				count int
				err   error
			)
			if quiet {
				count, err = app.review.Refresh(cmd.Context())
			} else {
				count, err = runRefreshSpinner(cmd.Context(), cmd.ErrOrStderr(), refreshLabel(app), app.groups.Len(), app.now, app.review.Refresh)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d duplicate groups\n", count)
			return err
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not show a progress spinner")

	return cmd
}

func newGroupsRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "remove <group-id>",
		Short:       "Drop a group locally without touching the library",
		Annotations: routed(navigation.RouteDuplicateGroup),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.GroupID(args[0])
			_, existed := app.groups.Get(id)
			app.groups.RemoveGroup(cmd.Context(), id)

			if !existed {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Group %s was not stored\n", id)
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed group %s\n", id)
			return err
		},
	}
}

func newGroupsResolveCmd(app *app) *cobra.Command {
	var keep []string

	cmd := &cobra.Command{
		Use:         "resolve <group-id>",
		Short:       "Keep some assets of a group and move the rest to the trash",
		Annotations: routed(navigation.RouteDuplicateGroup),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assets := make([]domain.AssetID, 0, len(keep))
			for _, id := range keep {
				assets = append(assets, domain.AssetID(id))
			}

			resolution, err := app.review.Resolve(cmd.Context(), domain.GroupID(args[0]), assets)
			if err != nil {
				return withSuggestion(app, args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Resolved group %s: kept %d, moved %d to trash\n",
				resolution.GroupID, len(resolution.Kept), len(resolution.Deleted))
			return err
		},
	}
	cmd.Flags().StringSliceVar(&keep, "keep", nil, "Asset IDs to keep (default: the first asset)")

	return cmd
}

func newGroupsDismissCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "dismiss <group-id>",
		Short:       "Mark a group as not duplicates and keep every asset",
		Annotations: routed(navigation.RouteDuplicateGroup),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolution, err := app.review.Dismiss(cmd.Context(), domain.GroupID(args[0]))
			if err != nil {
				return withSuggestion(app, args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Dismissed group %s (%d assets kept)\n", resolution.GroupID, len(resolution.Kept))
			return err
		},
	}
}

func refreshLabel(app *app) string {
	baseURL, err := app.session.ResolvedBaseURL()
	if err != nil {
		return "Fetching duplicate groups..."
	}
	return fmt.Sprintf("Fetching duplicate groups from %s...", baseURL)
}

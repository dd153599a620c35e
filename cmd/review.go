package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/immich-dupes/internal/adapters/immich"
	reviewrender "github.com/bnema/immich-dupes/internal/adapters/render/review"
	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/navigation"
	"github.com/spf13/cobra"
)

type groupOutput struct {
	ID       string   `json:"id" yaml:"id"`
	Position int      `json:"position" yaml:"position"`
	Assets   []string `json:"assets" yaml:"assets"`
	Links    []string `json:"links,omitempty" yaml:"links,omitempty"`
	Prev     string   `json:"prev,omitempty" yaml:"prev,omitempty"`
	Next     string   `json:"next,omitempty" yaml:"next,omitempty"`
}

func newReviewCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:         "review [group-id|position]",
		Short:       "Show one duplicate group",
		Long:        "Show a duplicate group by its ID or by its position in the sorted list. Without an argument the first group is shown.",
		Annotations: routed(navigation.RouteDuplicateGroup),
		Args:        cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}

			if app.groups.Len() == 0 {
				if output != outputText {
					return writeStructured(cmd.OutOrStdout(), output, []groupOutput{})
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No duplicate groups. Run `dupes groups refresh` to fetch them.")
				return err
			}

			group, position, ok := app.groups.Resolve(ref)
			if !ok {
				return withSuggestion(app, ref, fmt.Errorf("review %q: %w", ref, domain.ErrGroupNotFound))
			}

			page := reviewrender.Page{
				Group:    group,
				Position: position,
				Total:    app.groups.Len(),
			}
			ordered := app.groups.Ordered()
			if position > 0 {
				page.Prev = ordered[position-1].ID
			}
			if position+1 < len(ordered) {
				page.Next = ordered[position+1].ID
			}
			if baseURL, err := app.session.ResolvedBaseURL(); err == nil {
				page.AssetURL = func(id domain.AssetID) string { return immich.AssetURL(baseURL, id) }
			}

			if output != outputText {
				return writeStructured(cmd.OutOrStdout(), output, newGroupOutput(page))
			}

			rendered, err := app.pageRenderer(page, app.renderOptions())
			if err != nil {
				return fmt.Errorf("render review: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	addOutputFlag(cmd, &output)

	return cmd
}

func newGroupOutput(page reviewrender.Page) groupOutput {
	out := groupOutput{
		ID:       string(page.Group.ID),
		Position: page.Position,
		Assets:   make([]string, 0, len(page.Group.Assets)),
		Prev:     string(page.Prev),
		Next:     string(page.Next),
	}
	for _, asset := range page.Group.Assets {
		out.Assets = append(out.Assets, string(asset))
		if page.AssetURL != nil {
			out.Links = append(out.Links, page.AssetURL(asset))
		}
	}
	return out
}

// withSuggestion appends the closest stored group ID to a not-found error.
func withSuggestion(app *app, ref string, err error) error {
	if !errors.Is(err, domain.ErrGroupNotFound) {
		return err
	}
	if suggestion, ok := app.groups.Suggest(ref); ok {
		return fmt.Errorf("%w (did you mean %s?)", err, suggestion)
	}
	return err
}

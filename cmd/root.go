package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/immich-dupes/internal/navigation"
	"github.com/spf13/cobra"
)

// routeAnnotation names the navigation route a command renders. Commands
// without it are not navigations and skip the guard.
const routeAnnotation = "route"

var errSetupRequired = errors.New("no media library configured: run `dupes setup --endpoint URL --api-key KEY` first")

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dupes",
		Short:         "Review duplicate photos in an Immich library",
		Long:          "dupes stores the connection to an Immich-compatible media library, fetches the duplicate groups it detected and lets you resolve them from the terminal or a local web UI.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return guardCommand(cmd, args, app)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSetupCmd(app),
		newReviewCmd(app),
		newGroupsCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

func guardCommand(cmd *cobra.Command, args []string, app *app) error {
	name, ok := cmd.Annotations[routeAnnotation]
	if !ok {
		return nil
	}

	route, ok := navigation.RouteByName(navigation.RouteName(name))
	if !ok {
		return fmt.Errorf("command %q names unknown route %q", cmd.Name(), name)
	}

	decision := navigation.GuardRoute(route, app.session)
	if decision.Action == navigation.Redirect {
		app.logger.Debug("navigation redirected", "route", route.Name, "args", args, "location", decision.Location)
		return errSetupRequired
	}

	return nil
}

func routed(name navigation.RouteName) map[string]string {
	return map[string]string{routeAnnotation: string(name)}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/immich-dupes/internal/navigation"
	"github.com/spf13/cobra"
)

type sessionOutput struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	APIKey          string `json:"api_key" yaml:"api_key"`
	BaseURLOverride string `json:"base_url_override,omitempty" yaml:"base_url_override,omitempty"`
	ResolvedBaseURL string `json:"resolved_base_url,omitempty" yaml:"resolved_base_url,omitempty"`
	Configured      bool   `json:"configured" yaml:"configured"`
}

func newSetupCmd(app *app) *cobra.Command {
	var endpoint string
	var apiKey string
	var baseURL string

	cmd := &cobra.Command{
		Use:         "setup",
		Short:       "Store the media library endpoint and API key",
		Annotations: routed(navigation.RouteSetup),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.session.Set(cmd.Context(), strings.TrimSpace(endpoint), strings.TrimSpace(apiKey), strings.TrimSpace(baseURL))

			resolved, err := app.session.ResolvedBaseURL()
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
				resolved = "unresolved"
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved connection to %s (web UI %s)\n", app.session.Endpoint(), resolved)
			return err
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "API endpoint, e.g. https://photos.example.com/api")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key sent as x-api-key")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Web UI base URL (default: origin of the endpoint)")
	_ = cmd.MarkFlagRequired("endpoint")
	_ = cmd.MarkFlagRequired("api-key")

	cmd.AddCommand(
		newSetupShowCmd(app),
		newSetupClearCmd(app),
	)

	return cmd
}

func newSetupShowCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show the stored connection with the key masked",
		Annotations: routed(navigation.RouteSetup),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			snapshot := app.session.Snapshot()
			view := sessionOutput{
				Endpoint:        snapshot.Endpoint,
				APIKey:          maskSecret(snapshot.APIKey),
				BaseURLOverride: snapshot.BaseURLOverride,
				Configured:      snapshot.IsConfigured(),
			}
			if resolved, err := snapshot.ResolvedBaseURL(); err == nil {
				view.ResolvedBaseURL = resolved
			}

			if output != outputText {
				return writeStructured(cmd.OutOrStdout(), output, view)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "endpoint:   %s\n", orUnset(view.Endpoint))
			_, _ = fmt.Fprintf(out, "api key:    %s\n", orUnset(view.APIKey))
			_, _ = fmt.Fprintf(out, "base url:   %s\n", orUnset(view.BaseURLOverride))
			_, _ = fmt.Fprintf(out, "resolved:   %s\n", orUnset(view.ResolvedBaseURL))
			_, err := fmt.Fprintf(out, "configured: %t\n", view.Configured)
			return err
		},
	}
	addOutputFlag(cmd, &output)

	return cmd
}

func newSetupClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "clear",
		Short:       "Forget the stored connection",
		Annotations: routed(navigation.RouteSetup),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.session.Clear(cmd.Context())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Connection cleared")
			return err
		},
	}
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}

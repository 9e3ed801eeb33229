/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/profilekit/profilectl/pkg/oci"
	"github.com/profilekit/profilectl/pkg/profile"
	"github.com/profilekit/profilectl/pkg/renderer"
	"github.com/profilekit/profilectl/pkg/serializer"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		EnableShellCompletion: true,
		Usage:                 "Generate a Dockerfile and Helm chart from a profile",
		Description: `Generates all deployment artifacts from a profile document:

  - Dockerfile: image build file for the profile's OS base and packages
  - helm/Chart.yaml, helm/values.yaml: chart metadata and configuration
  - helm/templates/: namespace, deployment, service, and network policy
    manifests

The image repository in values.yaml carries the YOUR_DOCKERHUB_USERNAME
placeholder; the deploy command (or a manual edit) substitutes the real
registry user. Rendering is deterministic, so the output can be diffed
and committed.

# Examples

Generate artifacts from profile.yaml into ./generated:
  profilectl generate

Generate from a specific profile into a specific directory:
  profilectl generate --profile staging.yaml --output ./staging

Fail on network rules without a peer namespace:
  profilectl generate --strict

Publish the rendered chart to an OCI registry:
  profilectl generate --publish oci://ghcr.io/org/charts/webapp`,
		Flags: []cli.Flag{
			profileFlag,
			outputFlag,
			strictFlag,
			formatFlag,
			&cli.StringFlag{
				Name:  "publish",
				Usage: "Publish the rendered chart to an OCI registry (oci://registry/repository[:tag])",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			publishTarget := cmd.String("publish")
			var publishRef *oci.Reference
			if publishTarget != "" {
				if publishRef, err = oci.ParseReference(publishTarget); err != nil {
					return err
				}
			}

			prof, err := profile.Load(cmd.String("profile"))
			if err != nil {
				slog.Error("failed to load profile", "error", err)
				return err
			}

			r := renderer.New(renderer.WithStrictRules(cmd.Bool("strict")))
			result, err := r.Render(ctx, prof, cmd.String("output"))
			if err != nil {
				slog.Error("render failed", "error", err)
				return err
			}

			fmt.Println(result.Summary())
			fmt.Println("\nNext steps:")
			for i, step := range result.NextSteps {
				fmt.Printf("  %d. %s\n", i+1, step)
			}

			if publishRef != nil {
				if err := publishChart(ctx, prof, result, publishRef,
					cmd.Bool("plain-http"), cmd.Bool("insecure-tls")); err != nil {
					return err
				}
			}

			writer := serializer.NewStdoutWriter(format)
			defer func() { _ = writer.Close() }()
			return writer.Serialize(ctx, result)
		},
	}
}

// publishChart pushes the rendered chart directory to an OCI registry,
// defaulting the tag to the profile version.
func publishChart(ctx context.Context, prof *profile.Profile, result *renderer.Result, ref *oci.Reference, plainHTTP, insecureTLS bool) error {
	chartName, err := prof.Name()
	if err != nil {
		return err
	}
	chartVersion, err := prof.Version()
	if err != nil {
		return err
	}

	pushResult, err := oci.Push(ctx, oci.PushOptions{
		ChartDir:     filepath.Join(result.OutputDir, "helm"),
		Reference:    ref.WithDefaultTag(chartVersion),
		ChartName:    chartName,
		ChartVersion: chartVersion,
		PlainHTTP:    plainHTTP,
		InsecureTLS:  insecureTLS,
	})
	if err != nil {
		slog.Error("chart publish failed", "error", err)
		return err
	}

	fmt.Printf("\nChart published: %s@%s\n", pushResult.Reference, pushResult.Digest)
	return nil
}

/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/profilekit/profilectl/pkg/deployer"
	"github.com/profilekit/profilectl/pkg/serializer"
)

func deployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deploy",
		EnableShellCompletion: true,
		Usage:                 "Render a profile and deploy it end to end",
		Description: `Runs the complete deployment pipeline for a profile:

  1. Verify prerequisites (docker, kubectl, helm, minikube)
  2. Render the Dockerfile and Helm chart
  3. Substitute the registry user into values.yaml
  4. Ensure the minikube cluster is running
  5. Build and push the workload image
  6. Reinstall the Helm release (uninstall, delete namespace, install)
  7. Verify pods are ready and network policies are present

The pipeline is not transactional: a failing step leaves earlier steps
in effect, and rerunning is safe because the install step starts from a
clean slate.

# Examples

Deploy profile.yaml with images pushed as docker.io/alice/...:
  profilectl deploy --registry-user alice

Deploy without pushing (cluster shares the host docker daemon):
  profilectl deploy --registry-user alice --skip-push

Deploy to an existing cluster instead of managing minikube:
  profilectl deploy --registry-user alice --skip-cluster --kubeconfig ~/.kube/config`,
		Flags: []cli.Flag{
			profileFlag,
			outputFlag,
			formatFlag,
			strictFlag,
			kubeconfigFlag,
			&cli.StringFlag{
				Name:     "registry-user",
				Aliases:  []string{"u"},
				Required: true,
				Usage:    "Registry username substituted into values.yaml and the image reference",
			},
			&cli.BoolFlag{
				Name:  "skip-push",
				Usage: "Build the image but do not push it to the registry",
			},
			&cli.BoolFlag{
				Name:  "skip-cluster",
				Usage: "Assume a reachable cluster instead of managing minikube",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Minute,
				Usage: "Overall deadline for the pipeline",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Expose Prometheus metrics on this address for the duration of the run (e.g. 127.0.0.1:9464)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			if addr := cmd.String("metrics-addr"); addr != "" {
				_, shutdown, err := serveMetrics(addr)
				if err != nil {
					return err
				}
				defer func() {
					stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer stopCancel()
					_ = shutdown(stopCtx)
				}()
			}

			d := deployer.New(deployer.Config{
				ProfilePath:  cmd.String("profile"),
				OutputDir:    cmd.String("output"),
				RegistryUser: cmd.String("registry-user"),
				Kubeconfig:   cmd.String("kubeconfig"),
				SkipPush:     cmd.Bool("skip-push"),
				SkipCluster:  cmd.Bool("skip-cluster"),
				StrictRules:  cmd.Bool("strict"),
			})

			result, err := d.Deploy(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Deployed %s to namespace %s in %v.\n",
				result.ImageRef, result.Namespace, result.Duration.Round(time.Millisecond))
			fmt.Println("\nNext steps:")
			for i, step := range result.NextSteps() {
				fmt.Printf("  %d. %s\n", i+1, step)
			}

			writer := serializer.NewStdoutWriter(format)
			defer func() { _ = writer.Close() }()
			return writer.Serialize(ctx, result)
		},
	}
}

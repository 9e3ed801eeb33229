/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/profilekit/profilectl/pkg/serializer"
)

// Flags shared across commands.
var (
	profileFlag = &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Value:   "profile.yaml",
		Usage:   "Path to the profile document",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   "./generated",
		Usage:   "Output directory for generated artifacts",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Summary output format: %v", serializer.SupportedFormats()),
	}

	strictFlag = &cli.BoolFlag{
		Name:  "strict",
		Usage: "Fail on network rules without a peer namespace instead of matching all namespaces",
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:  "kubeconfig",
		Usage: "Path to kubeconfig file (default: KUBECONFIG env var or ~/.kube/config)",
	}
)

// parseOutputFormat extracts and validates the summary format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %v",
			format, serializer.SupportedFormats())
	}
	return format, nil
}

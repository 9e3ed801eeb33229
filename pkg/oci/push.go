/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
)

// ArtifactType is the media type for published chart artifacts.
const ArtifactType = "application/vnd.profilekit.chart"

// PushOptions configures a chart publish.
type PushOptions struct {
	// ChartDir is the rendered chart directory to publish.
	ChartDir string

	// Reference is the parsed, tagged publish target.
	Reference *Reference

	// ChartName and ChartVersion populate the image-spec annotations.
	ChartName    string
	ChartVersion string

	// PlainHTTP uses HTTP for the registry connection.
	PlainHTTP bool

	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult describes a completed publish.
type PushResult struct {
	// Digest is the SHA256 digest of the pushed manifest.
	Digest string

	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// Push publishes the rendered chart directory as an OCI 1.1 artifact.
// The chart tree becomes a single reproducible tar layer; docker
// credential helpers supply registry auth.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Reference == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "publish reference is required")
	}
	if opts.Reference.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "publish reference needs a tag")
	}

	absChartDir, err := filepath.Abs(opts.ChartDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to resolve chart directory", err)
	}

	fs, err := file.New(absChartDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absChartDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to add chart directory to store", err)
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers: []ociv1.Descriptor{layerDesc},
			ManifestAnnotations: map[string]string{
				ociv1.AnnotationTitle:   opts.ChartName,
				ociv1.AnnotationVersion: opts.ChartVersion,
			},
		})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to pack manifest", err)
	}

	if err := fs.Tag(ctx, manifestDesc, opts.Reference.Tag); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to tag manifest in local store", err)
	}

	repo, err := remote.NewRepository(
		fmt.Sprintf("%s/%s", opts.Reference.Registry, opts.Reference.Repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			"failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = newAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, fs, opts.Reference.Tag, repo, opts.Reference.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to push chart to registry", err)
	}

	result := &PushResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.ImageReference(),
	}

	slog.Info("chart published",
		"reference", result.Reference,
		"digest", result.Digest,
	)

	return result, nil
}

// newAuthClient builds the registry HTTP client, wiring docker
// credential helpers when present.
func newAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	return &auth.Client{
		Client:     &http.Client{Transport: transport},
		Cache:      auth.NewCache(),
		Credential: credentials.Credential(credStore),
	}
}

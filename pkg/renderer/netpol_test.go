/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	networkingv1 "k8s.io/api/networking/v1"

	"github.com/profilekit/profilectl/pkg/errors"
	"github.com/profilekit/profilectl/pkg/profile"
)

func workerProfile() *profile.Profile {
	return &profile.Profile{
		Meta: profile.Meta{Name: "worker", Version: "1.0.0"},
		OS:   profile.OS{Distro: "ubuntu", Version: "22.04"},
		Network: profile.Network{
			DefaultDenyIngress: true,
			DefaultDenyEgress:  true,
			Rules: []profile.Rule{
				{
					Direction: profile.DirectionIngress,
					Protocol:  "TCP",
					Port:      9090,
					From:      &profile.Peer{Namespace: "monitoring"},
				},
			},
		},
	}
}

func TestBuildNetworkPolicies_DenyFirst(t *testing.T) {
	docs, err := buildNetworkPolicies(workerProfile(), false)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	deny := docs[0]
	assert.Equal(t, "default-deny", deny.Metadata.Name)
	assert.Equal(t, "networking.k8s.io/v1", deny.APIVersion)
	assert.Equal(t, "NetworkPolicy", deny.Kind)
	assert.Empty(t, deny.Spec.PodSelector.MatchLabels)
	assert.Nil(t, deny.Spec.Ingress)
	assert.Nil(t, deny.Spec.Egress)

	allow := docs[1]
	assert.Equal(t, "{{ .Values.app.name }}-allow", allow.Metadata.Name)
	assert.Equal(t, map[string]string{"app": "{{ .Values.app.name }}"},
		allow.Spec.PodSelector.MatchLabels)
}

func TestBuildNetworkPolicies_SharedPolicyTypes(t *testing.T) {
	tests := []struct {
		name        string
		denyIngress bool
		denyEgress  bool
		want        []networkingv1.PolicyType
	}{
		{
			name:        "both directions",
			denyIngress: true,
			denyEgress:  true,
			want: []networkingv1.PolicyType{
				networkingv1.PolicyTypeIngress,
				networkingv1.PolicyTypeEgress,
			},
		},
		{
			name:        "ingress only",
			denyIngress: true,
			want:        []networkingv1.PolicyType{networkingv1.PolicyTypeIngress},
		},
		{
			name:       "egress only",
			denyEgress: true,
			want:       []networkingv1.PolicyType{networkingv1.PolicyTypeEgress},
		},
		{
			name: "neither",
			want: []networkingv1.PolicyType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := workerProfile()
			prof.Network.DefaultDenyIngress = tt.denyIngress
			prof.Network.DefaultDenyEgress = tt.denyEgress

			docs, err := buildNetworkPolicies(prof, false)
			require.NoError(t, err)

			// Both policies carry the same list even when one of them has
			// no entries for a declared direction.
			assert.Equal(t, tt.want, docs[0].Spec.PolicyTypes)
			assert.Equal(t, tt.want, docs[1].Spec.PolicyTypes)
		})
	}
}

func TestBuildNetworkPolicies_RuleOrderPreserved(t *testing.T) {
	prof := workerProfile()
	prof.Network.Rules = []profile.Rule{
		{Direction: profile.DirectionEgress, Protocol: "TCP", Port: 443,
			To: &profile.Peer{Namespace: "external"}},
		{Direction: profile.DirectionIngress, Protocol: "TCP", Port: 8080,
			From: &profile.Peer{Namespace: "frontend"}},
		{Direction: profile.DirectionIngress, Protocol: "UDP", Port: 53,
			From: &profile.Peer{Namespace: "dns"}},
		{Direction: profile.DirectionEgress, Protocol: "TCP", Port: 5432,
			To: &profile.Peer{Namespace: "database"}},
	}

	docs, err := buildNetworkPolicies(prof, false)
	require.NoError(t, err)

	allow := docs[1]
	require.NotNil(t, allow.Spec.Ingress)
	require.NotNil(t, allow.Spec.Egress)

	ingress := *allow.Spec.Ingress
	require.Len(t, ingress, 2)
	assert.Equal(t, "frontend", ingress[0].From[0].NamespaceSelector.MatchLabels[namespaceNameLabel])
	assert.Equal(t, 8080, ingress[0].Ports[0].Port)
	assert.Equal(t, "dns", ingress[1].From[0].NamespaceSelector.MatchLabels[namespaceNameLabel])

	egress := *allow.Spec.Egress
	require.Len(t, egress, 2)
	assert.Equal(t, "external", egress[0].To[0].NamespaceSelector.MatchLabels[namespaceNameLabel])
	assert.Equal(t, "database", egress[1].To[0].NamespaceSelector.MatchLabels[namespaceNameLabel])
	assert.Equal(t, 5432, egress[1].Ports[0].Port)
}

func TestBuildNetworkPolicies_EmptyDirectionsExplicit(t *testing.T) {
	docs, err := buildNetworkPolicies(workerProfile(), false)
	require.NoError(t, err)

	allow := docs[1]
	require.NotNil(t, allow.Spec.Egress)
	assert.Empty(t, *allow.Spec.Egress)

	content, err := marshalNetworkPolicies(docs)
	require.NoError(t, err)

	// The allow policy must render an explicit empty egress list so the
	// declared direction stays fully denied; the deny policy omits both
	// direction keys entirely.
	parts := strings.Split(string(content), "---\n")
	require.Len(t, parts, 2)
	assert.NotContains(t, parts[0], "ingress:")
	assert.NotContains(t, parts[0], "egress:")
	assert.Contains(t, parts[1], "egress: []")
}

func TestBuildNetworkPolicies_StrictMode(t *testing.T) {
	prof := workerProfile()
	prof.Network.Rules = append(prof.Network.Rules, profile.Rule{
		Direction: profile.DirectionEgress,
		Protocol:  "TCP",
		Port:      443,
	})

	// Lenient rendering matches all namespaces via an empty label value.
	docs, err := buildNetworkPolicies(prof, false)
	require.NoError(t, err)
	egress := *docs[1].Spec.Egress
	require.Len(t, egress, 1)
	assert.Equal(t, "", egress[0].To[0].NamespaceSelector.MatchLabels[namespaceNameLabel])

	_, err = buildNetworkPolicies(prof, true)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "egress rule 0")
}

func TestMarshalNetworkPolicies_Headers(t *testing.T) {
	docs, err := buildNetworkPolicies(workerProfile(), false)
	require.NoError(t, err)

	content, err := marshalNetworkPolicies(docs)
	require.NoError(t, err)

	out := string(content)
	assert.True(t, strings.HasPrefix(out, "# Policy 1: default deny\n"))
	assert.Contains(t, out, "---\n# Policy 2: allow exceptions\n")
	assert.Contains(t, out, `kubernetes.io/metadata.name: monitoring`)
	assert.Contains(t, out, "protocol: TCP")
	assert.Contains(t, out, "port: 9090")
}

/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"context"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
	"github.com/profilekit/profilectl/pkg/profile"
)

// namespaceNameLabel is the well-known label Kubernetes sets on every
// namespace, used to select peer namespaces by name.
const namespaceNameLabel = "kubernetes.io/metadata.name"

// Template references resolved by Helm at install time. The policy
// documents are built as typed values and marshaled, so these land in
// the output as quoted scalars.
const (
	tmplNamespace = "{{ .Values.namespace }}"
	tmplAppName   = "{{ .Values.app.name }}"
)

// networkPolicyDoc is a NetworkPolicy manifest built for YAML output.
//
// The k8s.io/api types are not marshaled directly because their JSON
// tags omit empty ingress/egress lists, and the chart needs explicit
// empty lists for directions declared in policyTypes.
type networkPolicyDoc struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Metadata   policyMetadata `yaml:"metadata"`
	Spec       policySpec     `yaml:"spec"`
}

type policyMetadata struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace"`
}

type policySpec struct {
	PodSelector podSelector               `yaml:"podSelector"`
	PolicyTypes []networkingv1.PolicyType `yaml:"policyTypes"`

	// Ingress and Egress are pointers so the deny policy omits the keys
	// entirely while the allow policy renders explicit empty lists.
	Ingress *[]allowEntry `yaml:"ingress,omitempty"`
	Egress  *[]allowEntry `yaml:"egress,omitempty"`
}

type podSelector struct {
	MatchLabels map[string]string `yaml:"matchLabels,omitempty"`
}

type allowEntry struct {
	From  []policyPeer `yaml:"from,omitempty"`
	To    []policyPeer `yaml:"to,omitempty"`
	Ports []policyPort `yaml:"ports"`
}

type policyPeer struct {
	NamespaceSelector namespaceSelector `yaml:"namespaceSelector"`
}

type namespaceSelector struct {
	MatchLabels map[string]string `yaml:"matchLabels"`
}

type policyPort struct {
	Protocol corev1.Protocol `yaml:"protocol"`
	Port     int             `yaml:"port"`
}

// buildNetworkPolicies translates the profile's network rules into the
// deny and allow NetworkPolicy documents, deny first.
//
// The deny policy selects every pod in the namespace and declares only
// the directions flagged default-deny; an omitted direction leaves that
// traffic unrestricted by this policy. The allow policy selects the app
// pods and carries one entry per rule, in input order, with an explicit
// empty list for a direction that has no rules (total isolation when
// combined with the deny default).
func buildNetworkPolicies(prof *profile.Profile, strict bool) ([]networkPolicyDoc, error) {
	types := policyTypes(prof.Network)

	ingress, err := allowEntries(prof.IngressRules(), profile.DirectionIngress, strict)
	if err != nil {
		return nil, err
	}
	egress, err := allowEntries(prof.EgressRules(), profile.DirectionEgress, strict)
	if err != nil {
		return nil, err
	}

	deny := networkPolicyDoc{
		APIVersion: networkingv1.SchemeGroupVersion.String(),
		Kind:       "NetworkPolicy",
		Metadata: policyMetadata{
			Name:      "default-deny",
			Namespace: tmplNamespace,
		},
		Spec: policySpec{
			PodSelector: podSelector{}, // empty selector matches all pods
			PolicyTypes: types,
		},
	}

	allow := networkPolicyDoc{
		APIVersion: networkingv1.SchemeGroupVersion.String(),
		Kind:       "NetworkPolicy",
		Metadata: policyMetadata{
			Name:      tmplAppName + "-allow",
			Namespace: tmplNamespace,
		},
		Spec: policySpec{
			PodSelector: podSelector{
				MatchLabels: map[string]string{"app": tmplAppName},
			},
			PolicyTypes: types,
			Ingress:     &ingress,
			Egress:      &egress,
		},
	}

	return []networkPolicyDoc{deny, allow}, nil
}

// policyTypes computes the shared policyTypes list from the
// default-deny flags. Both policies reuse it verbatim: a pod-selecting
// policy only affects the directions it declares.
func policyTypes(network profile.Network) []networkingv1.PolicyType {
	types := make([]networkingv1.PolicyType, 0, 2)
	if network.DefaultDenyIngress {
		types = append(types, networkingv1.PolicyTypeIngress)
	}
	if network.DefaultDenyEgress {
		types = append(types, networkingv1.PolicyTypeEgress)
	}
	return types
}

// allowEntries builds one allow entry per rule, preserving input order.
// A rule without a peer namespace renders an empty selector value in
// lenient mode and fails in strict mode.
func allowEntries(rules []profile.Rule, dir profile.Direction, strict bool) ([]allowEntry, error) {
	entries := make([]allowEntry, 0, len(rules))

	for i, rule := range rules {
		ns := rule.PeerNamespace()
		if ns == "" && strict {
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidRequest,
				"%s rule %d has no peer namespace", dir, i)
		}

		peer := policyPeer{
			NamespaceSelector: namespaceSelector{
				MatchLabels: map[string]string{namespaceNameLabel: ns},
			},
		}

		entry := allowEntry{
			Ports: []policyPort{
				{Protocol: corev1.Protocol(rule.Protocol), Port: rule.Port},
			},
		}
		switch dir {
		case profile.DirectionIngress:
			entry.From = []policyPeer{peer}
		case profile.DirectionEgress:
			entry.To = []policyPeer{peer}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// marshalNetworkPolicies serializes the policy documents into a single
// multi-document YAML file.
func marshalNetworkPolicies(docs []networkPolicyDoc) ([]byte, error) {
	var out []byte
	headers := []string{
		"# Policy 1: default deny\n",
		"# Policy 2: allow exceptions\n",
	}

	for i, doc := range docs {
		if i > 0 {
			out = append(out, []byte("---\n")...)
		}
		if i < len(headers) {
			out = append(out, []byte(headers[i])...)
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal NetworkPolicy %d: %w", i, err)
		}
		out = append(out, data...)
	}

	return out, nil
}

// generateNetworkPolicies writes helm/templates/networkpolicy.yaml.
func (r *Renderer) generateNetworkPolicies(ctx context.Context, prof *profile.Profile, templatesDir string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	docs, err := buildNetworkPolicies(prof, r.strictRules)
	if err != nil {
		return "", 0, err
	}

	content, err := marshalNetworkPolicies(docs)
	if err != nil {
		return "", 0, err
	}

	return writeArtifact(filepath.Join(templatesDir, "networkpolicy.yaml"), content)
}

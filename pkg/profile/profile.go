/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"fmt"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
)

// Direction identifies the traffic direction of a network rule.
type Direction string

const (
	// DirectionIngress marks a rule permitting inbound traffic.
	DirectionIngress Direction = "ingress"
	// DirectionEgress marks a rule permitting outbound traffic.
	DirectionEgress Direction = "egress"
)

// DefaultCommand is the keep-alive command baked into both the generated
// image and the deployment when the profile does not override it. The
// deployed container is an inspectable sandbox for exercising network
// policies, not a service process.
var DefaultCommand = []string{"/bin/sh", "-c", "while true; do sleep 3600; done"}

// Defaults applied to optional profile fields.
const (
	DefaultReplicas    = 1
	DefaultServiceType = "ClusterIP"
	DefaultServicePort = 80
	DefaultPullPolicy  = "IfNotPresent"
)

// Profile is the declarative input document describing a target
// environment: OS base, packages to install, and network rules.
type Profile struct {
	Meta     Meta     `yaml:"profile"`
	OS       OS       `yaml:"os"`
	Packages []string `yaml:"packages"`

	// Command overrides the container entry command.
	// Empty means DefaultCommand.
	Command []string `yaml:"command,omitempty"`

	// Replicas overrides the deployment replica count. Zero means DefaultReplicas.
	Replicas int `yaml:"replicas,omitempty"`

	Service Service `yaml:"service,omitempty"`
	Network Network `yaml:"network"`
}

// Meta holds the profile identity used for naming and tagging.
type Meta struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// OS selects the container base image as "distro:version".
type OS struct {
	Distro  string `yaml:"distro"`
	Version string `yaml:"version"`
}

// Service configures the generated Kubernetes Service.
type Service struct {
	Type string `yaml:"type,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Network holds the declarative traffic rules and default-deny flags.
type Network struct {
	Rules              []Rule `yaml:"rules"`
	DefaultDenyIngress bool   `yaml:"default_deny_ingress"`
	DefaultDenyEgress  bool   `yaml:"default_deny_egress"`
}

// Rule is a single allow exception. Ingress rules carry a From peer,
// egress rules a To peer.
type Rule struct {
	Direction Direction `yaml:"direction"`
	Protocol  string    `yaml:"protocol"`
	Port      int       `yaml:"port"`
	From      *Peer     `yaml:"from,omitempty"`
	To        *Peer     `yaml:"to,omitempty"`
}

// Peer identifies the namespace a rule grants traffic to or from.
type Peer struct {
	Namespace string `yaml:"namespace"`
}

// PeerNamespace returns the namespace of the rule's peer based on its
// direction, or an empty string when the peer is absent. The empty
// fallback mirrors lenient rendering; strict mode rejects it earlier.
func (r Rule) PeerNamespace() string {
	switch r.Direction {
	case DirectionIngress:
		if r.From != nil {
			return r.From.Namespace
		}
	case DirectionEgress:
		if r.To != nil {
			return r.To.Namespace
		}
	}
	return ""
}

// Name returns profile.name, failing on first access when absent.
func (p *Profile) Name() (string, error) {
	return p.require("profile.name", p.Meta.Name)
}

// Version returns profile.version, failing on first access when absent.
func (p *Profile) Version() (string, error) {
	return p.require("profile.version", p.Meta.Version)
}

// Distro returns os.distro, failing on first access when absent.
func (p *Profile) Distro() (string, error) {
	return p.require("os.distro", p.OS.Distro)
}

// OSVersion returns os.version, failing on first access when absent.
func (p *Profile) OSVersion() (string, error) {
	return p.require("os.version", p.OS.Version)
}

func (p *Profile) require(field, value string) (string, error) {
	if value == "" {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("missing required profile field %q", field),
			map[string]any{"field": field})
	}
	return value, nil
}

// BaseImage derives the container base image reference "distro:version".
func (p *Profile) BaseImage() (string, error) {
	distro, err := p.Distro()
	if err != nil {
		return "", err
	}
	osv, err := p.OSVersion()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", distro, osv), nil
}

// ImageTag derives the image tag "{distro}-{name}-v{version}".
func (p *Profile) ImageTag() (string, error) {
	distro, err := p.Distro()
	if err != nil {
		return "", err
	}
	name, err := p.Name()
	if err != nil {
		return "", err
	}
	version, err := p.Version()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-v%s", distro, name, version), nil
}

// Namespace returns the target Kubernetes namespace, which equals the
// profile name.
func (p *Profile) Namespace() (string, error) {
	return p.Name()
}

// EntryCommand returns the container command, falling back to DefaultCommand.
func (p *Profile) EntryCommand() []string {
	if len(p.Command) > 0 {
		return p.Command
	}
	return DefaultCommand
}

// ReplicaCount returns the deployment replica count, falling back to
// DefaultReplicas.
func (p *Profile) ReplicaCount() int {
	if p.Replicas > 0 {
		return p.Replicas
	}
	return DefaultReplicas
}

// ServiceType returns the Service type, falling back to DefaultServiceType.
func (p *Profile) ServiceType() string {
	if p.Service.Type != "" {
		return p.Service.Type
	}
	return DefaultServiceType
}

// ServicePort returns the Service port, falling back to DefaultServicePort.
func (p *Profile) ServicePort() int {
	if p.Service.Port > 0 {
		return p.Service.Port
	}
	return DefaultServicePort
}

// IngressRules returns the ingress partition of the rule list,
// preserving input order.
func (p *Profile) IngressRules() []Rule {
	return p.rulesByDirection(DirectionIngress)
}

// EgressRules returns the egress partition of the rule list,
// preserving input order.
func (p *Profile) EgressRules() []Rule {
	return p.rulesByDirection(DirectionEgress)
}

func (p *Profile) rulesByDirection(dir Direction) []Rule {
	rules := make([]Rule, 0, len(p.Network.Rules))
	for _, r := range p.Network.Rules {
		if r.Direction == dir {
			rules = append(rules, r)
		}
	}
	return rules
}

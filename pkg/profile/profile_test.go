package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *Profile {
	return &Profile{
		Meta:     Meta{Name: "worker", Version: "1"},
		OS:       OS{Distro: "ubuntu", Version: "22.04"},
		Packages: []string{"curl"},
		Network: Network{
			DefaultDenyIngress: true,
			Rules: []Rule{
				{
					Direction: DirectionIngress,
					Protocol:  "TCP",
					Port:      9090,
					From:      &Peer{Namespace: "monitoring"},
				},
			},
		},
	}
}

func TestImageTag(t *testing.T) {
	tag, err := testProfile().ImageTag()
	require.NoError(t, err)
	assert.Equal(t, "ubuntu-worker-v1", tag)
}

func TestBaseImage(t *testing.T) {
	img, err := testProfile().BaseImage()
	require.NoError(t, err)
	assert.Equal(t, "ubuntu:22.04", img)
}

func TestNamespaceEqualsName(t *testing.T) {
	ns, err := testProfile().Namespace()
	require.NoError(t, err)
	assert.Equal(t, "worker", ns)
}

func TestMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
		access func(*Profile) error
	}{
		{
			name:   "missing name",
			mutate: func(p *Profile) { p.Meta.Name = "" },
			access: func(p *Profile) error { _, err := p.Name(); return err },
		},
		{
			name:   "missing version",
			mutate: func(p *Profile) { p.Meta.Version = "" },
			access: func(p *Profile) error { _, err := p.Version(); return err },
		},
		{
			name:   "missing distro",
			mutate: func(p *Profile) { p.OS.Distro = "" },
			access: func(p *Profile) error { _, err := p.ImageTag(); return err },
		},
		{
			name:   "missing os version",
			mutate: func(p *Profile) { p.OS.Version = "" },
			access: func(p *Profile) error { _, err := p.BaseImage(); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			tt.mutate(p)
			assert.Error(t, tt.access(p))
		})
	}
}

func TestDefaults(t *testing.T) {
	p := testProfile()

	assert.Equal(t, DefaultCommand, p.EntryCommand())
	assert.Equal(t, DefaultReplicas, p.ReplicaCount())
	assert.Equal(t, DefaultServiceType, p.ServiceType())
	assert.Equal(t, DefaultServicePort, p.ServicePort())

	p.Command = []string{"/bin/true"}
	p.Replicas = 3
	p.Service = Service{Type: "NodePort", Port: 8080}

	assert.Equal(t, []string{"/bin/true"}, p.EntryCommand())
	assert.Equal(t, 3, p.ReplicaCount())
	assert.Equal(t, "NodePort", p.ServiceType())
	assert.Equal(t, 8080, p.ServicePort())
}

func TestRulePartitioning(t *testing.T) {
	p := testProfile()
	p.Network.Rules = []Rule{
		{Direction: DirectionEgress, Protocol: "TCP", Port: 53, To: &Peer{Namespace: "kube-system"}},
		{Direction: DirectionIngress, Protocol: "TCP", Port: 9090, From: &Peer{Namespace: "monitoring"}},
		{Direction: DirectionIngress, Protocol: "UDP", Port: 8125, From: &Peer{Namespace: "metrics"}},
	}

	ingress := p.IngressRules()
	require.Len(t, ingress, 2)
	// input order preserved within the partition
	assert.Equal(t, "monitoring", ingress[0].PeerNamespace())
	assert.Equal(t, "metrics", ingress[1].PeerNamespace())

	egress := p.EgressRules()
	require.Len(t, egress, 1)
	assert.Equal(t, "kube-system", egress[0].PeerNamespace())
}

func TestPeerNamespaceFallback(t *testing.T) {
	r := Rule{Direction: DirectionIngress, Protocol: "TCP", Port: 80}
	assert.Equal(t, "", r.PeerNamespace())

	r = Rule{Direction: DirectionEgress, Protocol: "TCP", Port: 80, From: &Peer{Namespace: "ignored"}}
	assert.Equal(t, "", r.PeerNamespace(), "egress rule must not read the ingress peer")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{name: "valid profile", mutate: func(p *Profile) {}, wantErr: false},
		{name: "invalid k8s name", mutate: func(p *Profile) { p.Meta.Name = "Worker_1" }, wantErr: true},
		{name: "invalid base image", mutate: func(p *Profile) { p.OS.Distro = "UBUNTU IMAGE" }, wantErr: true},
		{name: "bad direction", mutate: func(p *Profile) { p.Network.Rules[0].Direction = "sideways" }, wantErr: true},
		{name: "missing protocol", mutate: func(p *Profile) { p.Network.Rules[0].Protocol = "" }, wantErr: true},
		{name: "port out of range", mutate: func(p *Profile) { p.Network.Rules[0].Port = 70000 }, wantErr: true},
		{name: "bad peer namespace", mutate: func(p *Profile) { p.Network.Rules[0].From.Namespace = "Bad_NS" }, wantErr: true},
		{
			name: "missing peer tolerated by validate",
			mutate: func(p *Profile) {
				p.Network.Rules[0].From = nil
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

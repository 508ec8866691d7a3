package world

import "testing"

func TestConfigValidate(t *testing.T) {
	base := Config{
		NGenes: 1, NAlleles: 2, Width: 8, Height: 8, MaxAgents: 4,
		NRoles: 1, MinEpLength: 5, MaxEpLength: 6, ExtinctionReward: -1,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"n_genes too high", func(c *Config) { c.NGenes = 4 }},
		{"n_genes negative", func(c *Config) { c.NGenes = -1 }},
		{"n_alleles zero", func(c *Config) { c.NAlleles = 0 }},
		{"width zero", func(c *Config) { c.Width = 0 }},
		{"height zero", func(c *Config) { c.Height = 0 }},
		{"max_agents zero", func(c *Config) { c.MaxAgents = 0 }},
		{"n_roles zero", func(c *Config) { c.NRoles = 0 }},
		{"min_ep_length zero", func(c *Config) { c.MinEpLength = 0 }},
		{"max_ep_length not greater", func(c *Config) { c.MaxEpLength = c.MinEpLength }},
		{"extinction_reward non-negative", func(c *Config) { c.ExtinctionReward = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestObsSize(t *testing.T) {
	cfg := Config{NGenes: 2, Width: 8, Height: 8}
	side := 2*visionRadius + 1
	want := side*side*(11+2) + 6 + 2 + 5
	if got := cfg.obsSize(); got != want {
		t.Fatalf("obsSize() = %d, want %d", got, want)
	}
}

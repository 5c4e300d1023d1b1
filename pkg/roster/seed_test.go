package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/roster/pkg/roster/config"
)

const rosterYAML = `
name: platform
work_delay: 10ms
author:
  first_name: Ada
  last_name: Lovelace
participants:
  - name: Ann
    seniority_level: junior
    team: web
  - name: Bob
    seniority_level: senior
  - name: Nobody
  - just a string
pricing:
  junior: 10
  senior: 25.5
  broken: -3
  text: "twelve"
`

func TestSeedFromConfig(t *testing.T) {
	cfg, err := config.FromYAML([]byte(rosterYAML))
	require.NoError(t, err)

	seed := SeedFromConfig(cfg)

	require.Len(t, seed.Participants, 2)
	assert.Equal(t, "Ann", seed.Participants[0].Name)
	assert.Equal(t, "junior", seed.Participants[0].SeniorityLevel)
	assert.Equal(t, "web", seed.Participants[0].Attributes["team"])
	assert.Equal(t, "Bob", seed.Participants[1].Name)
	assert.Nil(t, seed.Participants[1].Attributes)
	assert.Equal(t, 2, seed.DroppedParticipants)

	assert.Equal(t, map[string]float64{"junior": 10, "senior": 25.5}, seed.Pricing)
	assert.Equal(t, 2, seed.DroppedRates)
}

func TestSeedFromConfig_Empty(t *testing.T) {
	seed := SeedFromConfig(config.New(nil))

	assert.Nil(t, seed.Participants)
	assert.Nil(t, seed.Pricing)
	assert.Zero(t, seed.DroppedParticipants)
	assert.Zero(t, seed.DroppedRates)
}

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]any
		wantDelay time.Duration
		wantName  string
	}{
		{"defaults", nil, DefaultWorkDelay, "roster"},
		{"duration string", map[string]any{"work_delay": "250ms"}, 250 * time.Millisecond, "roster"},
		{"bare number is milliseconds", map[string]any{"work_delay": 5}, 5 * time.Millisecond, "roster"},
		{"zero delay", map[string]any{"work_delay": "0s"}, 0, "roster"},
		{"name", map[string]any{"name": "billing"}, DefaultWorkDelay, "billing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultRegistryConfig()
			for _, opt := range OptionsFromConfig(config.New(tt.data)) {
				opt(&cfg)
			}
			assert.Equal(t, tt.wantDelay, cfg.delay)
			assert.Equal(t, tt.wantName, cfg.name)
		})
	}
}

func TestModuleFromConfig(t *testing.T) {
	cfg, err := config.FromYAML([]byte(rosterYAML))
	require.NoError(t, err)

	m := ModuleFromConfig(cfg, WithLogger(discardLogger()))

	assert.Equal(t, Author{FirstName: "Ada", LastName: "Lovelace"}, m.Author)
	assert.Equal(t, "Ada Lovelace", m.Author.String())
	assert.Equal(t, 10*time.Millisecond, m.Registry.cfg.delay)
	assert.Equal(t, "platform", m.Registry.cfg.name)
	assert.Equal(t, 2, m.Registry.Len())

	total, err := m.Registry.CalculateSalary(1)
	require.NoError(t, err)
	assert.InDelta(t, (10+25.5)*HoursPerDay, total, 1e-9)
}

func TestModuleFromConfig_HCL(t *testing.T) {
	src := `
name = "hcl"
author = {
  first_name = "Grace"
  last_name  = "Hopper"
}
participants = [
  { name = "Ann", seniority_level = "junior" },
]
pricing = {
  junior = 12
}
`
	cfg, err := config.FromHCL([]byte(src), "roster.hcl")
	require.NoError(t, err)

	m := ModuleFromConfig(cfg, WithLogger(discardLogger()))

	assert.Equal(t, "Grace Hopper", m.Author.String())
	assert.Equal(t, "hcl", m.Registry.cfg.name)
	assert.Equal(t, map[string]float64{"junior": 12}, m.Registry.Pricing())
	require.Equal(t, 1, m.Registry.Len())
	assert.Equal(t, "Ann", m.Registry.Participants()[0].Name)
}

func TestNewModule(t *testing.T) {
	m := NewModule(Author{FirstName: "Ada"})

	assert.Equal(t, "Ada", m.Author.String())
	require.NotNil(t, m.Registry)
	assert.Equal(t, 0, m.Registry.Len())
}

func TestSeedApply(t *testing.T) {
	tests := []struct {
		name             string
		yaml             string
		wantParticipants int
		wantPricing      map[string]float64
	}{
		{
			name:             "all participants invalid empties the collection",
			yaml:             "participants:\n  - name: Nobody\n  - just a string\n",
			wantParticipants: 0,
			wantPricing:      map[string]float64{"junior": 10},
		},
		{
			name:             "all rates invalid empties the table",
			yaml:             "pricing:\n  junior: -1\n  senior: twelve\n",
			wantParticipants: 1,
			wantPricing:      map[string]float64{},
		},
		{
			name:             "absent keys leave state untouched",
			yaml:             "name: other\n",
			wantParticipants: 1,
			wantPricing:      map[string]float64{"junior": 10},
		},
		{
			name:             "empty list leaves state untouched",
			yaml:             "participants: []\npricing: {}\n",
			wantParticipants: 1,
			wantPricing:      map[string]float64{"junior": 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newManualRegistry()
			r.Init([]*Participant{junior("Ann")}, map[string]float64{"junior": 10})
			cfg, err := config.FromYAML([]byte(tt.yaml))
			require.NoError(t, err)

			SeedFromConfig(cfg).Apply(r)

			assert.Equal(t, tt.wantParticipants, r.Len())
			assert.Equal(t, tt.wantPricing, r.Pricing())
		})
	}
}

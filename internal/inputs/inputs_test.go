package inputs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dormantJSON = `[
  {"id": "lead-1", "signals": {"last_engagement": "2024-05-01T12:00:00Z",
    "objection_history": ["too expensive"]}},
  {"id": "lead-2", "signals": {"last_engagement": "2024-01-01T00:00:00Z"}}
]`

const dealsYAML = `
deals:
  - id: deal-1
    original_value: 25000
    lost_at: 2024-04-01T00:00:00Z
    loss_reason: budget freeze
    trust_level: high
    champion_identified: true
    signals:
      communication_preferences:
        - channel: phone
          preference_score: 0.8
          response_rate: 0.6
`

func TestDecodeDormantLeadsList(t *testing.T) {
	leads, err := DecodeDormantLeads([]byte(dormantJSON))
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "lead-1", leads[0].ID)
	assert.Equal(t, time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC), leads[0].Signals.LastEngagement)
	assert.Equal(t, []string{"too expensive"}, leads[0].Signals.ObjectionHistory)
}

func TestDecodeLostDealsYAMLEnvelope(t *testing.T) {
	deals, err := DecodeLostDeals([]byte(dealsYAML))
	require.NoError(t, err)
	require.Len(t, deals, 1)

	d := deals[0]
	assert.Equal(t, "deal-1", d.ID)
	assert.InDelta(t, 25000.0, d.OriginalValue, 1e-9)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), d.LostAt)
	assert.Equal(t, schema.HighTrust, d.TrustLevel)
	assert.True(t, d.ChampionIdentified)
	require.Len(t, d.Signals.CommunicationPreferences, 1)
	assert.Equal(t, schema.PhoneChannel, d.Signals.CommunicationPreferences[0].Channel)
}

func TestDecodeSingleEntity(t *testing.T) {
	leads, err := DecodeInboundLeads([]byte(`{"id": "in-1", "source": "referral", "website": {"company_size": 200}}`))
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "in-1", leads[0].ID)
	assert.Equal(t, 200, leads[0].Website.CompanySize)
}

func TestDecodeInboundLeadsEnvelope(t *testing.T) {
	leads, err := DecodeInboundLeads([]byte(`{"leads": [{"id": "a"}, {"id": "b"}]}`))
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "   "},
		{"scalar", "42"},
		{"yaml scalar", "just some words"},
		{"wrong list type", `{"leads": {"id": "a"}}`},
		{"bad timestamp", `[{"id": "a", "signals": {"last_engagement": "yesterday"}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDormantLeads([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFileAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.WriteFile(path, []byte(dormantJSON), 0o600))

	leads, err := LoadDormantLeads(path)
	require.NoError(t, err)
	assert.Len(t, leads, 2)

	orig := Stdin
	t.Cleanup(func() { Stdin = orig })
	Stdin = strings.NewReader(dealsYAML)

	deals, err := LoadLostDeals(StdinPath)
	require.NoError(t, err)
	assert.Len(t, deals, 1)

	_, err = LoadInboundLeads(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadInboundLeads("")
	assert.Error(t, err)
}

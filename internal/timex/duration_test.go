package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"15m"`, want: 15 * time.Minute},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		A Duration `yaml:"a"`
		B Duration `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 90m\nb: 1000000000\n"), &cfg))
	assert.Equal(t, 90*time.Minute, cfg.A.Duration)
	assert.Equal(t, time.Second, cfg.B.Duration)

	require.Error(t, yaml.Unmarshal([]byte("a: soon\n"), &cfg))
	require.Error(t, yaml.Unmarshal([]byte("a: [1, 2]\n"), &cfg))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{90 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))
}

func TestTimestamp_RoundTripAndOrder(t *testing.T) {
	a := time.Date(2024, 3, 1, 10, 0, 0, 5, time.FixedZone("X", 3600))
	b := a.Add(time.Millisecond)

	sa, sb := FormatTimestamp(a), FormatTimestamp(b)
	assert.Equal(t, "2024-03-01T09:00:00.000000005Z", sa)
	assert.Less(t, sa, sb)

	got, err := ParseTimestamp(sa)
	require.NoError(t, err)
	assert.True(t, got.Equal(a))

	got, err = ParseTimestamp("2024-03-01T10:00:00+01:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	_, err = ParseTimestamp("yesterday")
	require.Error(t, err)
}

package flagx

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var serverFlags = []string{"-a", "-d", "-k", "-t", "-l"}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "server flags kept, config flag dropped",
			args:    []string{"-c", "server.json", "-a", ":8080", "-d", "journal.db"},
			allowed: serverFlags,
			want:    []string{"-a", ":8080", "-d", "journal.db"},
		},
		{
			name:    "config loader sees only its own flag",
			args:    []string{"-a", ":8080", "-config=/etc/musicjournal.json", "-k", "00ff"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=/etc/musicjournal.json"},
		},
		{
			name:    "postgres dsn with query string survives",
			args:    []string{"-d", "postgres://u:p@db:5432/journal?sslmode=disable", "-x", "1"},
			allowed: serverFlags,
			want:    []string{"-d", "postgres://u:p@db:5432/journal?sslmode=disable"},
		},
		{
			name:    "sqlite dsn with pragma in equals form",
			args:    []string{"-d=file:journal.db?_pragma=foreign_keys(1)"},
			allowed: serverFlags,
			want:    []string{"-d=file:journal.db?_pragma=foreign_keys(1)"},
		},
		{
			name:    "numeric values",
			args:    []string{"-t", "90", "-l", "2.5"},
			allowed: serverFlags,
			want:    []string{"-t", "90", "-l", "2.5"},
		},
		{
			name:    "flag without value at end is kept as-is",
			args:    []string{"-k"},
			allowed: serverFlags,
			want:    []string{"-k"},
		},
		{
			name:    "next dash token is not taken as a value",
			args:    []string{"-k", "-d", "journal.db"},
			allowed: serverFlags,
			want:    []string{"-k", "-d", "journal.db"},
		},
		{
			name:    "positional arguments dropped",
			args:    []string{"serve", "-a", ":9000", "extra"},
			allowed: serverFlags,
			want:    []string{"-a", ":9000"},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-a", ":1", "-a", ":2"},
			allowed: serverFlags,
			want:    []string{"-a", ":1", "-a", ":2"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"server", "-a", ":8080", "-c", "/etc/musicjournal.json"}
	assert.Equal(t, "/etc/musicjournal.json", JsonConfigFlags())

	os.Args = []string{"server", "-a", ":8080"}
	assert.Empty(t, JsonConfigFlags())
}

func TestJsonConfigFrom(t *testing.T) {
	assert.Equal(t, "/etc/musicjournal.json", jsonConfigFrom([]string{"-d", "j.db", "-config=/etc/musicjournal.json"}))
	assert.Equal(t, "b.json", jsonConfigFrom([]string{"-c", "a.json", "-config", "b.json"}), "last one wins")
}

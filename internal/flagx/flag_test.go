package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-c", "-config", "-a"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"separate value", []string{"-c", "conf.json", "-x", "1"}, []string{"-c", "conf.json"}},
		{"equals form", []string{"-config=alt.json", "-x=2"}, []string{"-config=alt.json"}},
		{"order preserved", []string{"-a", ":8080", "-c", "c.json"}, []string{"-a", ":8080", "-c", "c.json"}},
		{"unknown only", []string{"-x", "1", "positional"}, []string{}},
		{"dangling flag", []string{"-c"}, []string{"-c"}},
		{"flag followed by flag", []string{"-c", "-a", ":9000"}, []string{"-c", "-a", ":9000"}},
		{"value with leading dash in equals form", []string{"-config=-odd.json"}, []string{"-config=-odd.json"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-a", ":8080", "-c", "server.json"}, "server.json"},
		{"long", []string{"-config", "long.json"}, "long.json"},
		{"equals", []string{"-config=eq.json", "-s", "secret"}, "eq.json"},
		{"absent", []string{"-a", ":8080"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JsonConfigFlags(tt.args))
		})
	}
}

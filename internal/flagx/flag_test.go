package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", ":4000", "-x", "junk"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":4000"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-d=dsn"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value",
			args:    []string{"-v", "-a", ":4000"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", ":4000"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", ":4000"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

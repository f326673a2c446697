package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		format string
		json   bool
	}{
		{
			name:   "json format returns JSONFormatter",
			format: "json",
			json:   true,
		},
		{
			name:   "empty format returns HumanFormatter",
			format: "",
		},
		{
			name:   "unknown format returns HumanFormatter",
			format: "unknown",
		},
		{
			name:   "human format returns HumanFormatter",
			format: "human",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := Get(tt.format)
			assert.NotNil(t, formatter)

			if tt.json {
				_, ok := formatter.(*JSONFormatter)
				assert.True(t, ok, "expected JSONFormatter")
			} else {
				_, ok := formatter.(*HumanFormatter)
				assert.True(t, ok, "expected HumanFormatter")
			}
		})
	}
}

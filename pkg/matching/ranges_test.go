package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithinRange(t *testing.T) {
	tests := []struct {
		name      string
		value     *float64
		min       *float64
		max       *float64
		tolerance float64
		expected  bool
	}{
		{"nil value is satisfied", nil, f(3), f(5), 0, true},
		{"unbounded range is satisfied", f(10), nil, nil, 0.15, true},
		{"inside both bounds", f(4), f(3), f(5), 0, true},
		{"below min", f(2), f(3), nil, 0, false},
		{"at min", f(3), f(3), nil, 0, true},
		{"below min inside tolerance", f(2.5), f(3), nil, 0.2, true},
		{"below min outside tolerance", f(2.3), f(3), nil, 0.2, false},
		{"above max", f(6), nil, f(5), 0, false},
		{"above max inside tolerance", f(5.5), nil, f(5), 0.15, true},
		{"above max outside tolerance", f(5.8), nil, f(5), 0.15, false},
		{"tolerance widens both bounds", f(2.6), f(3), f(5), 0.15, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, withinRange(tt.value, tt.min, tt.max, tt.tolerance))
		})
	}
}

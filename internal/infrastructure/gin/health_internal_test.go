//nolint:testpackage // formatUptime is unexported
package gin

import (
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{3*time.Minute + 7*time.Second, "3m 7s"},
		{2*time.Hour + 5*time.Minute + 9*time.Second, "2h 5m"},
		{50*time.Hour + 10*time.Minute, "2d 2h 10m"},
	}

	for _, tt := range tests {
		if got := formatUptime(tt.in); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package calendar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pantry/internal/platform/datekey"
)

func TestSnacksAvailable(t *testing.T) {
	monWed := Config{DefaultSnackWeekdays: []int{1, 3}}

	tests := []struct {
		name string
		cfg  Config
		key  string
		want bool
	}{
		{name: "wednesday in default set", cfg: monWed, key: "2026-01-28", want: true},
		{name: "monday in default set", cfg: monWed, key: "2026-01-26", want: true},
		{name: "friday not in default set", cfg: monWed, key: "2026-01-30", want: false},
		{name: "tuesday not in default set", cfg: monWed, key: "2026-01-27", want: false},
		{
			name: "override enables a non-default day",
			cfg: Config{
				DefaultSnackWeekdays: []int{1, 3},
				Overrides:            []Override{{DateKey: "2026-01-27", SnacksAvailable: true}},
			},
			key:  "2026-01-27",
			want: true,
		},
		{
			name: "override disables a default day",
			cfg: Config{
				DefaultSnackWeekdays: []int{1, 3},
				Overrides:            []Override{{DateKey: "2026-01-28", SnacksAvailable: false}},
			},
			key:  "2026-01-28",
			want: false,
		},
		{
			name: "override only affects its exact date",
			cfg: Config{
				DefaultSnackWeekdays: []int{1, 3},
				Overrides:            []Override{{DateKey: "2026-01-28", SnacksAvailable: false}},
			},
			key:  "2026-02-04",
			want: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			day, err := datekey.Parse(tc.key)
			require.NoError(t, err)
			require.Equal(t, tc.want, SnacksAvailable(tc.cfg, day))
		})
	}
}

func TestSnacksNeverAvailableOnWeekends(t *testing.T) {
	// Saturday 2026-01-31 and Sunday 2026-02-01, with every trick in the
	// config trying to enable them.
	cfg := Config{
		DefaultSnackWeekdays: []int{0, 1, 2, 3, 4, 5, 6},
		Overrides: []Override{
			{DateKey: "2026-01-31", SnacksAvailable: true},
			{DateKey: "2026-02-01", SnacksAvailable: true},
		},
	}

	for _, key := range []string{"2026-01-31", "2026-02-01"} {
		day, err := datekey.Parse(key)
		require.NoError(t, err)
		require.False(t, SnacksAvailable(cfg, day), "weekend %s must never be a snack day", key)
	}
}

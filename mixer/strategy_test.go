// SPDX-License-Identifier: EPL-2.0

package mixer

import "testing"

func TestSettle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  strategy
		all16    bool
		outcomes []outcome
		want     strategy
		wantNop  []bool
	}{
		{
			name:    "nothing enabled",
			current: strategyNop,
			want:    strategyNop,
		},
		{
			name:     "all muted",
			current:  strategyGeneric,
			all16:    true,
			outcomes: []outcome{{muted: true}, {muted: true}},
			want:     strategyNop,
			wantNop:  []bool{true, true},
		},
		{
			name:     "muted resampler keeps running",
			current:  strategyResampling,
			outcomes: []outcome{{muted: true, resampling: true}},
			want:     strategyResampling,
			wantNop:  []bool{false},
		},
		{
			name:     "ramp finished on lone track",
			current:  strategyGeneric,
			all16:    true,
			outcomes: []outcome{{}},
			want:     strategyOneTrack,
			wantNop:  []bool{false},
		},
		{
			name:     "ramp still pending",
			current:  strategyGeneric,
			all16:    true,
			outcomes: []outcome{{ramping: true}},
			want:     strategyGeneric,
			wantNop:  []bool{false},
		},
		{
			name:     "one of two muted",
			current:  strategyGeneric,
			all16:    true,
			outcomes: []outcome{{muted: true}, {}},
			want:     strategyGeneric,
			wantNop:  []bool{true, false},
		},
		{
			name:     "lone track with aux",
			current:  strategyGeneric,
			all16:    false,
			outcomes: []outcome{{}},
			want:     strategyGeneric,
			wantNop:  []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := settle(tt.current, tt.all16, tt.outcomes)
			if got != tt.want {
				t.Errorf("settle() = %v, want %v", got, tt.want)
			}
			for i, w := range tt.wantNop {
				if tt.outcomes[i].nop != w {
					t.Errorf("outcomes[%d].nop = %v, want %v", i, tt.outcomes[i].nop, w)
				}
			}
		})
	}
}

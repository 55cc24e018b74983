package exam

import (
	"testing"
)

func TestGetProgress(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Progress
	}{
		{name: "no stages", statuses: nil, want: Progress{}},
		{name: "all pending", statuses: []Status{StatusPending, StatusPending}, want: Progress{Total: 2}},
		{
			name:     "cleared, not-cleared, selected",
			statuses: []Status{StatusCleared, StatusNotCleared, StatusSelected},
			want:     Progress{Completed: 2, Total: 3, Percentage: 67},
		},
		{name: "one third rounds down", statuses: []Status{StatusCleared, StatusPending, StatusPending}, want: Progress{Completed: 1, Total: 3, Percentage: 33}},
		{name: "half", statuses: []Status{StatusCleared, StatusNA}, want: Progress{Completed: 1, Total: 2, Percentage: 50}},
		{
			name:     "one eighth rounds half up",
			statuses: []Status{StatusCleared, "", "", "", "", "", "", ""},
			want:     Progress{Completed: 1, Total: 8, Percentage: 13},
		},
		{name: "all done", statuses: []Status{StatusCleared, StatusSelected}, want: Progress{Completed: 2, Total: 2, Percentage: 100}},
		{name: "not-selected does not count", statuses: []Status{StatusNotSelected}, want: Progress{Total: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stages := make([]Stage, 0, len(tt.statuses))
			for _, st := range tt.statuses {
				stages = append(stages, Stage{Status: st})
			}
			if got := GetProgress(stages); got != tt.want {
				t.Errorf("GetProgress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGetProgress_Bounds(t *testing.T) {
	open := []Status{StatusPending, StatusNotCleared, StatusNA, StatusNotSelected}
	for total := 0; total <= 12; total++ {
		for completed := 0; completed <= total; completed++ {
			stages := make([]Stage, total)
			for i := range stages {
				if i < completed {
					stages[i].Status = StatusCleared
				} else {
					stages[i].Status = open[i%len(open)]
				}
			}

			prog := GetProgress(stages)
			if prog.Completed != completed || prog.Total != total {
				t.Fatalf("GetProgress() = %+v, want completed %d of %d", prog, completed, total)
			}
			want := 0
			if total > 0 {
				// round half up on exact fractions
				want = int(float64(100*completed)/float64(total) + 0.5)
			}
			if prog.Percentage != want {
				t.Errorf("GetProgress(%d/%d).Percentage = %d, want %d", completed, total, prog.Percentage, want)
			}
		}
	}
}

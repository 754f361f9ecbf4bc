package cmd

import (
	"testing"

	"github.com/gogpu/compose"
)

func TestParsePlacement(t *testing.T) {
	base := compose.Transform{X: 1, Y: 2, ScaleX: 0.5, ScaleY: 0.5, Rotation: 3}
	tests := []struct {
		in      string
		ref     string
		want    compose.Transform
		wantErr bool
	}{
		{"star.png", "star.png", base, false},
		{"star.png@10,20", "star.png", compose.Transform{X: 10, Y: 20, ScaleX: 0.5, ScaleY: 0.5, Rotation: 3}, false},
		{"star.png@10,20,2", "star.png", compose.Transform{X: 10, Y: 20, ScaleX: 2, ScaleY: 2, Rotation: 3}, false},
		{"star.png@10,20,2,-45", "star.png", compose.Transform{X: 10, Y: 20, ScaleX: 2, ScaleY: 2, Rotation: -45}, false},
		{"https://user@example.com/a.png", "https://user@example.com/a.png", base, false},
		{"star.png@10", "", base, true},
		{"@10,20", "", base, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, p, err := parsePlacement(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if ref != tt.ref {
				t.Errorf("ref = %q, want %q", ref, tt.ref)
			}
			if got := base.Merge(p); got != tt.want {
				t.Errorf("transform = %+v, want %+v", got, tt.want)
			}
		})
	}
}

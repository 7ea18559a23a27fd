package stamp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/gardar/scanstamp/pkg/geom"
)

func TestSideResolve(t *testing.T) {
	tests := []struct {
		name    string
		side    Side
		counter int
		want    string
	}{
		{"off", Side{Mode: Off, Text: "ignored", Count: 5}, 3, ""},
		{"static", Side{Mode: Static, Text: "R Header"}, 7, "R Header"},
		{"dynamic first file", Side{Mode: Dynamic, Text: "L Header", Count: 100000}, 0, "L Header - 100000"},
		{"dynamic second file", Side{Mode: Dynamic, Text: "L Header", Count: 100000}, 1, "L Header - 100001"},
		{"dynamic empty text", Side{Mode: Dynamic, Count: 1}, 2, " - 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.side.Resolve(tt.counter); got != tt.want {
				t.Errorf("Resolve(%d) = %q, want %q", tt.counter, got, tt.want)
			}
		})
	}
}

func TestModeYAML(t *testing.T) {
	var got struct {
		Mode Mode `yaml:"mode"`
	}
	if err := yaml.Unmarshal([]byte("mode: Dynamic\n"), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Mode != Dynamic {
		t.Errorf("mode = %v, want dynamic", got.Mode)
	}

	if err := yaml.Unmarshal([]byte("mode: sometimes\n"), &got); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestLayoutRows(t *testing.T) {
	header := Band{
		Enabled: true,
		Left:    Side{Mode: Dynamic, Text: "L Header", Count: 100000},
		Right:   Side{Mode: Static, Text: "R Header"},
	}
	footer := Band{
		Enabled: true,
		Left:    Side{Mode: Off},
		Right:   Side{Mode: Dynamic, Text: "R Footer", Count: 500},
	}

	got := DefaultLayout.Rows(header, footer, 1, 600, 800)
	want := []Row{
		{
			Rect: geom.Rect{X: 0, Y: 770, W: 600, H: 20},
			Cells: [2]Cell{
				{Text: "L Header - 100001", Align: AlignLeft},
				{Text: "R Header", Align: AlignRight},
			},
		},
		{
			Rect: geom.Rect{X: 0, Y: 0, W: 600, H: 20},
			Cells: [2]Cell{
				{Text: "", Align: AlignLeft},
				{Text: "R Footer - 501", Align: AlignRight},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutRowsDisabled(t *testing.T) {
	header := Band{Enabled: false, Left: Side{Mode: Static, Text: "x"}}
	footer := Band{Enabled: true}
	rows := DefaultLayout.Rows(header, footer, 0, 800, 600)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Rect.Y != 0 || rows[0].Rect.W != 800 {
		t.Errorf("footer rect = %v", rows[0].Rect)
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/mondrian/pkg/palette"
	"github.com/matzehuels/mondrian/pkg/pipeline"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	buf := captureStdout(t)
	printStats(pipeline.Stats{
		RectCount: 5,
		ColorCounts: map[palette.Color]int{
			palette.White: 3,
			palette.Red:   2,
		},
	}, palette.DefaultTheme())

	out := buf.String()
	for _, want := range []string{"5 rectangles", "3 white", "2 red"} {
		if !strings.Contains(out, want) {
			t.Errorf("printStats output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "blue") {
		t.Errorf("printStats should skip colours with no rectangles: %q", out)
	}
}

func TestPrintHelpers(t *testing.T) {
	buf := captureStdout(t)
	printSuccess("Rendered seed %d", 7)
	printWarning("slow")
	printFile("out.svg")
	printKeyValue("seed", "7")

	out := buf.String()
	for _, want := range []string{iconSuccess, "Rendered seed 7", "slow", "out.svg", "seed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if got := strings.Count(out, "\n"); got != 4 {
		t.Errorf("wrote %d lines, want 4", got)
	}
}

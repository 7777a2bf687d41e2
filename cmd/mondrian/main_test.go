package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	errs "github.com/matzehuels/mondrian/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantOut string
	}{
		{"success", nil, 0, ""},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), exitInterrupted, ""},
		{"coded error", errs.New(errs.ErrCodeInvalidStep, "step must be positive, got -1"), 1, "Error: step must be positive, got -1"},
		{"plain error", fmt.Errorf("write out.svg: disk full"), 1, "Error: write out.svg: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := exitCode(&buf, tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.wantOut {
				t.Errorf("output = %q, want %q", got, tt.wantOut)
			}
		})
	}
}

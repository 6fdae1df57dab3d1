// Package main provides tests for the expense-tracker CLI entry point.
package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/setup"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "step failure propagates its exit code",
			err:  &setup.StepError{Step: "install dependencies", ExitCode: 3, Err: errors.New("exit status 3")},
			want: 3,
		},
		{
			name: "wrapped step failure still unwraps",
			err:  fmt.Errorf("setup: %w", &setup.StepError{Step: "upgrade installer", ExitCode: 2, Err: errors.New("exit status 2")}),
			want: 2,
		},
		{
			name: "other errors default to 1",
			err:  errors.New("unknown command"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

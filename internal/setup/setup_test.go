package setup

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommander records invocations and fails on request.
type fakeCommander struct {
	calls   [][]string
	failOn  int // 1-based call index to fail, 0 for never
	failErr error
}

func (f *fakeCommander) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.failOn != 0 && len(f.calls) == f.failOn {
		return f.failErr
	}
	return nil
}

func TestInstaller_RunsStepsInOrder(t *testing.T) {
	fake := &fakeCommander{}
	inst := NewInstallerWithCommander(fake, nil)

	err := inst.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, []string{"pip", "install", "-r", "requirements.txt"}, fake.calls[0])
	assert.Equal(t, []string{"pip", "install", "--upgrade", "pip"}, fake.calls[1])
}

func TestInstaller_FailFastSkipsUpgrade(t *testing.T) {
	fake := &fakeCommander{failOn: 1, failErr: fmt.Errorf("resolution failed")}
	inst := NewInstallerWithCommander(fake, nil)

	err := inst.Run(context.Background())
	require.Error(t, err)

	// The upgrade step must never be attempted after a failed install.
	assert.Len(t, fake.calls, 1)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "install dependencies", se.Step)
}

func TestInstaller_UpgradeFailureReported(t *testing.T) {
	fake := &fakeCommander{failOn: 2, failErr: fmt.Errorf("network unreachable")}
	inst := NewInstallerWithCommander(fake, nil)

	err := inst.Run(context.Background())
	require.Error(t, err)
	assert.Len(t, fake.calls, 2)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upgrade installer", se.Step)
	assert.Equal(t, 1, se.ExitCode)
}

func TestInstaller_Idempotent(t *testing.T) {
	fake := &fakeCommander{}
	inst := NewInstallerWithCommander(fake, nil)

	require.NoError(t, inst.Run(context.Background()))
	require.NoError(t, inst.Run(context.Background()))

	// Two runs, two steps each; no extra side effects.
	assert.Len(t, fake.calls, 4)
}

func TestStepError_PropagatesExitCode(t *testing.T) {
	// A real non-zero exit to obtain an *exec.ExitError with code 3.
	cmd := exec.Command("sh", "-c", "exit 3")
	execErr := cmd.Run()
	require.Error(t, execErr)

	fake := &fakeCommander{failOn: 1, failErr: execErr}
	inst := NewInstallerWithCommander(fake, nil)

	err := inst.Run(context.Background())
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 3, se.ExitCode)
}

func TestStepError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	se := &StepError{Step: "install dependencies", ExitCode: 1, Err: inner}

	assert.True(t, errors.Is(se, inner))
	assert.Contains(t, se.Error(), "install dependencies")
}

package shell_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squeeze/internal/adapters/shell"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("line1").Times(1)
	mockLogger.EXPECT().Info("line2").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), t.TempDir(), []string{"sh", "-c", "echo line1; echo line2"}, nil, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)
	argv := []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"}
	require.NoError(t, executor.Execute(context.Background(), t.TempDir(), argv, nil, nil))
}

func TestExecutor_Execute_TrailingPartialLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no newline").Times(1)

	executor := shell.NewExecutor(mockLogger)
	argv := []string{"sh", "-c", "printf 'no newline'"}
	require.NoError(t, executor.Execute(context.Background(), t.TempDir(), argv, nil, nil))
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))
	dir := t.TempDir()

	var stdout bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), dir, []string{"pwd", "-P"}, &stdout, nil))
	assert.NotEmpty(t, stdout.String())
}

func TestExecutor_Execute_Writers(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	var stdout, stderr bytes.Buffer
	argv := []string{"sh", "-c", "echo out; echo err >&2"}
	require.NoError(t, executor.Execute(context.Background(), t.TempDir(), argv, &stdout, &stderr))

	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecutor_Execute_StderrIsLoggedAsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "warning: something")
	})

	executor := shell.NewExecutor(mockLogger)
	argv := []string{"sh", "-c", "echo 'warning: something' >&2"}
	require.NoError(t, executor.Execute(context.Background(), t.TempDir(), argv, nil, nil))
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), t.TempDir(), []string{"nonexistent-command-xyz123"}, nil, nil)
	assert.ErrorContains(t, err, domain.ErrCommandFailed.Error())
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), t.TempDir(), []string{"sh", "-c", "exit 42"}, nil, nil)
	assert.ErrorContains(t, err, domain.ErrCommandFailed.Error())
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	require.NoError(t, executor.Execute(context.Background(), t.TempDir(), nil, nil, nil))
}

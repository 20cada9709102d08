package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/squeeze/internal/adapters/telemetry"
	"go.trai.ch/squeeze/internal/app"
	"go.trai.ch/squeeze/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func components(t *testing.T) (*app.Components, *mocks.MockLogger, *mocks.MockConfigLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	loader := mocks.NewMockConfigLoader(ctrl)
	tel := telemetry.NewNoOp()

	application := app.New(
		loader,
		logger,
		mocks.NewMockWalker(ctrl),
		mocks.NewMockHasher(ctrl),
		mocks.NewMockBuildInfoStore(ctrl),
		mocks.NewMockLinter(ctrl),
		mocks.NewMockMinifierFactory(ctrl),
		tel,
		mocks.NewMockWatcher(ctrl),
		mocks.NewMockReloadServer(ctrl),
		nil,
	)
	return &app.Components{App: application, Logger: logger, Telemetry: tel}, logger, loader
}

func TestRun_Success(t *testing.T) {
	c, _, _ := components(t)
	provider := func(context.Context) (*app.Components, error) { return c, nil }

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "squeeze version")
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ExecutionError(t *testing.T) {
	c, logger, loader := components(t)
	loader.EXPECT().Load(gomock.Any()).Return(nil, errors.New("config error"))
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "failed to load configuration")
	})
	provider := func(context.Context) (*app.Components, error) { return c, nil }

	exitCode := run(context.Background(), []string{"build"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediaxis/internal/server/config"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDriver = "memory"
	c.HTTPAddr = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewApp_MemoryDriver(t *testing.T) {
	app, err := NewApp(memoryConfig())
	require.NoError(t, err)
	assert.Nil(t, app.db)
	assert.NotNil(t, app.accountService)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	c := memoryConfig()
	c.DatabaseDriver = "oracle"

	_, err := NewApp(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestApp_RunStopsOnContextCancel(t *testing.T) {
	app, err := NewApp(memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

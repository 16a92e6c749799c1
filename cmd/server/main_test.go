package main

import (
	"testing"

	"github.com/parish/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func TestProfilerConfig(t *testing.T) {
	cfg := &config.Config{Telemetry: config.TelemetryConfig{
		ServiceName:            "parish-backend",
		ProfilingEnabled:       true,
		ProfilingServerAddress: "http://pyroscope:4040",
		ProfilingTypes:         []string{"CPU", "mutex", "block"},
	}}

	pc := profilerConfig(cfg)
	assert.True(t, pc.Enabled)
	assert.Equal(t, "parish-backend", pc.ApplicationName)
	assert.Equal(t, "http://pyroscope:4040", pc.ServerAddress)
	assert.True(t, pc.ProfileCPU)
	assert.True(t, pc.ProfileMutex)
	assert.True(t, pc.ProfileBlock)
	assert.False(t, pc.ProfileAlloc)
	assert.False(t, pc.ProfileInuse)
	assert.False(t, pc.ProfileGoroutines)
}

package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"sync"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServerAndName(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "parish"}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "application name")
}

func TestProfiler_StopConcurrent(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Stop())
		}()
	}
	wg.Wait()
}

func TestProfiler_BuildProfileTypes(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProfilerConfig
		want []pyroscope.ProfileType
	}{
		{"none", ProfilerConfig{}, nil},
		{"cpu", ProfilerConfig{ProfileCPU: true}, []pyroscope.ProfileType{pyroscope.ProfileCPU}},
		{
			"alloc and inuse",
			ProfilerConfig{ProfileAlloc: true, ProfileInuse: true},
			[]pyroscope.ProfileType{
				pyroscope.ProfileAllocObjects, pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects, pyroscope.ProfileInuseSpace,
			},
		},
		{
			"mutex and block",
			ProfilerConfig{ProfileMutex: true, ProfileBlock: true},
			[]pyroscope.ProfileType{
				pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration,
				pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profiler{config: tt.cfg}
			assert.Equal(t, tt.want, p.buildProfileTypes())
		})
	}
}

func TestWithProfilingLabels_ReportLabels(t *testing.T) {
	var report, customization string
	WithProfilingLabels(context.Background(), ReportLabels("cash_book", "INCOME_ONLY"), func(ctx context.Context) {
		report, _ = pprof.Label(ctx, ProfilingLabelReport)
		customization, _ = pprof.Label(ctx, ProfilingLabelCustomization)
	})

	assert.Equal(t, "cash_book", report)
	assert.Equal(t, "INCOME_ONLY", customization)
}

func TestWithProfilingLabels_NoLabels(t *testing.T) {
	called := false
	WithProfilingLabels(context.Background(), nil, func(ctx context.Context) {
		called = true
		_, ok := pprof.Label(ctx, ProfilingLabelReport)
		assert.False(t, ok)
	})
	assert.True(t, called)
}

func TestWithProfilingLabels_DropsHighCardinality(t *testing.T) {
	labels := RegionLabels("fan_out", map[string]string{
		"parish_id": "7d6f0b3e",
		"Family-ID": "f-1",
	})

	WithProfilingLabels(context.Background(), labels, func(ctx context.Context) {
		region, ok := pprof.Label(ctx, ProfilingLabelRegion)
		assert.True(t, ok)
		assert.Equal(t, "fan_out", region)
		_, ok = pprof.Label(ctx, "parish_id")
		assert.False(t, ok)
		_, ok = pprof.Label(ctx, "family_id")
		assert.False(t, ok)
	})
	assert.NotContains(t, labels, ProfilingLabelReport)
}

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Report Type": "cash_book",
		"empty":       "",
		"region":      strings.Repeat("x", MaxLabelValueLength+10),
	})

	require.Len(t, pairs, 4)
	assert.Equal(t, "region", pairs[0])
	assert.Len(t, pairs[1], MaxLabelValueLength)
	assert.Equal(t, []string{"report_type", "cash_book"}, pairs[2:])
}

package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

type memoryLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryLogExporter) all() []sdklog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]sdklog.Record(nil), e.records...)
}

func newMemoryLoggerProvider(t *testing.T) (*LoggerProvider, *memoryLogExporter) {
	t.Helper()
	exporter := &memoryLogExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return &LoggerProvider{
		provider: provider,
		logger:   zaptest.NewLogger(t),
		config:   LogsConfig{Enabled: true, ServiceName: "parish-test"},
	}, exporter
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	lp, err := NewLoggerProvider(ctx, LogsConfig{Enabled: false, ServiceName: "parish-test"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.ForceFlush(ctx))
	assert.NoError(t, lp.Shutdown(ctx))

	core := lp.ZapCore(zapcore.DebugLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestLoggerProvider_ZapCore_NilProvider(t *testing.T) {
	var lp *LoggerProvider
	assert.False(t, lp.ZapCore(zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
}

func TestLoggerProvider_ZapCore_ExportsRecords(t *testing.T) {
	lp, exporter := newMemoryLoggerProvider(t)

	l := zap.New(lp.ZapCore(zapcore.InfoLevel))
	l.Debug("dropped below info")
	l.Info("notice board computed", zap.String("report", "notice_board"))
	l.Error("report failed")
	require.NoError(t, lp.ForceFlush(context.Background()))

	records := exporter.all()
	require.Len(t, records, 2)
	assert.Equal(t, "notice board computed", records[0].Body().AsString())
	assert.Equal(t, log.SeverityInfo, records[0].Severity())
	assert.Equal(t, "report failed", records[1].Body().AsString())
	assert.Equal(t, log.SeverityError, records[1].Severity())

	var report string
	records[0].WalkAttributes(func(kv log.KeyValue) bool {
		if kv.Key == "report" {
			report = kv.Value.AsString()
		}
		return true
	})
	assert.Equal(t, "notice_board", report)
}

func TestLevelFilterCore_With(t *testing.T) {
	lp, exporter := newMemoryLoggerProvider(t)

	core := lp.ZapCore(zapcore.WarnLevel).With([]zapcore.Field{zap.String("parish", "st-mary")})
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))

	l := zap.New(core)
	l.Info("filtered")
	l.Warn("slow ledger query")

	records := exporter.all()
	require.Len(t, records, 1)
	assert.Equal(t, "slow ledger query", records[0].Body().AsString())
}

package telemetry

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys.
const (
	ProfilingLabelReport        = "report"
	ProfilingLabelCustomization = "customization"
	ProfilingLabelRegion        = "region" // e.g. "ledger_read", "fan_out"
)

// MaxLabelValueLength caps label values.
const MaxLabelValueLength = 128

// highCardinalityLabels never become profiling labels. parish_id stays out
// of profiles as well; one series per parish would swamp Pyroscope.
var highCardinalityLabels = map[string]bool{
	"parish_id":  true,
	"family_id":  true,
	"request_id": true,
	"trace_id":   true,
	"span_id":    true,
}

// WithProfilingLabels runs fn with labels attached to the goroutine's pprof
// labels, so CPU time spent building a report is attributable to it in
// Pyroscope. Labels are copied and sanitized first. With no usable label fn
// runs directly.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(maps.Clone(labels))
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// ReportLabels labels the computation of one report.
func ReportLabels(reportType, customization string) map[string]string {
	labels := map[string]string{ProfilingLabelReport: reportType}
	if customization != "" {
		labels[ProfilingLabelCustomization] = customization
	}
	return labels
}

// RegionLabels labels a code region inside a report computation.
func RegionLabels(region string, extra map[string]string) map[string]string {
	labels := make(map[string]string, len(extra)+1)
	maps.Copy(labels, extra)
	labels[ProfilingLabelRegion] = region
	return labels
}

// sanitizeLabels returns key/value pairs in key order. Empty and
// high-cardinality labels are dropped and long values truncated.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range slices.Sorted(maps.Keys(labels)) {
		value := labels[key]
		if key == "" || value == "" {
			continue
		}
		cleanKey := sanitizeLabelKey(key)
		if cleanKey == "" || highCardinalityLabels[cleanKey] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		pairs = append(pairs, cleanKey, value)
	}
	return pairs
}

// sanitizeLabelKey lowercases key into snake_case and drops anything else.
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

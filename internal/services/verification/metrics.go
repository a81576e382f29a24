package verification

import "fraudshield/internal/models"

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOTPIssued(models.Decision) {}
func (n *NoopMetricsCollector) RecordOTPResult(State)           {}

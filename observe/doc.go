// Package observe provides pure.Observer implementations backed by zap and
// OpenTelemetry metrics.
package observe

// Package telemetry observes boundary crossings without ever touching
// payloads.
//
// It provides two lattice.Observer implementations: Metrics, which counts
// proof issuance and reveal/lift outcomes in a private Prometheus registry,
// and AuditLogger, which writes one structured log line per crossing attempt
// with the proof's correlation ID. Observers see level tags and outcomes
// only; the labeled data itself never reaches this package.
package telemetry

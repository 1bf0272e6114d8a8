package telemetry

import (
	"log/slog"

	"github.com/polisai/seclib/pkg/lattice"
)

// AuditLogger writes one structured log line per crossing attempt. Grants
// log at Info, denials at Warn: a denial is a programmer or configuration
// error worth noticing, not routine traffic.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an audit logger. A nil logger falls back to
// slog.Default.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// ObserveCrossing implements lattice.Observer.
func (a *AuditLogger) ObserveCrossing(e lattice.Event) {
	attrs := []any{
		slog.String("op", string(e.Op)),
		slog.String("candidate", string(e.Candidate)),
		slog.String("required", string(e.Required)),
	}
	if e.ProofID != "" {
		attrs = append(attrs, slog.String("proof_id", e.ProofID))
	}
	if e.LatticeID != "" {
		attrs = append(attrs, slog.String("lattice_id", e.LatticeID))
	}

	if e.Granted {
		a.logger.Info("crossing granted", attrs...)
	} else {
		a.logger.Warn("crossing denied", attrs...)
	}
}

type multi []lattice.Observer

func (m multi) ObserveCrossing(e lattice.Event) {
	for _, o := range m {
		o.ObserveCrossing(e)
	}
}

// Multi fans crossing events out to several observers in order.
func Multi(observers ...lattice.Observer) lattice.Observer {
	return multi(observers)
}

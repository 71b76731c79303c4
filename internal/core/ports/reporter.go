// internal/core/ports/reporter.go
package ports

// Reporter is the leveled diagnostic sink the inventory reports through.
// *slog.Logger satisfies it.
type Reporter interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

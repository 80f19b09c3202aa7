package rng

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level so that
// combat resolutions can be audited after the fact.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource creates a LoggedSource drawing from src and logging each
// value to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Float64 draws from the wrapped source and logs the value.
//
// Postcondition: the returned value is the wrapped source's value, unmodified.
func (l *LoggedSource) Float64() float64 {
	v := l.src.Float64()
	l.logger.Debug("rng draw", zap.Float64("value", v))
	return v
}

package ygb

// Logger represents yagobar logger.
type Logger interface {
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
	WithPrefix(prefix string) Logger
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
func (NopLogger) Debugf(string, ...interface{}) {}

// WithPrefix returns the same logger.
func (l NopLogger) WithPrefix(string) Logger { return l }

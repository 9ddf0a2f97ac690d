package hooks

import "github.com/rs/zerolog"

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	Log zerolog.Logger
}

// NewZerologLogger wraps log as a Logger.
func NewZerologLogger(log zerolog.Logger) ZerologLogger {
	return ZerologLogger{Log: log}
}

func (z ZerologLogger) Warn(msg string, cause error) {
	ev := z.Log.Warn()
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Msg(msg)
}

func (z ZerologLogger) Info(msg string) { z.Log.Info().Msg(msg) }

func (z ZerologLogger) Debug(msg string) { z.Log.Debug().Msg(msg) }

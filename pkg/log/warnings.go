package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/tabreg/tabreg/pkg/errors"
)

// InstallWarningLogger routes library warnings (undefined metrics and
// friends) through a zerolog logger writing to w. Warning types that
// implement zerolog.LogObjectMarshaler are logged with their structured
// fields; anything else falls back to the error message.
func InstallWarningLogger(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg("tabreg warning")
			return
		}
		ev.Err(warning).Msg("tabreg warning")
	})
}

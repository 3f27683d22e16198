package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, lvl := range []string{"", "off", "OFF"} {
		log, err := New(lvl)
		require.NoError(t, err)
		require.False(t, log.Core().Enabled(zapcore.ErrorLevel))
	}

	log, err := New("warn")
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = New("chatty")
	require.Error(t, err)
}

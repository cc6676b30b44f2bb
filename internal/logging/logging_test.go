package logging_test

import (
	"testing"

	"github.com/Behyna/sms-services/scheduler/internal/config"
	"github.com/Behyna/sms-services/scheduler/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Run("configured level", func(t *testing.T) {
		logger, err := logging.NewLogger(&config.Config{Log: config.Log{Level: "warn"}})

		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zap.InfoLevel))
		assert.True(t, logger.Core().Enabled(zap.WarnLevel))
	})

	t.Run("development", func(t *testing.T) {
		logger, err := logging.NewLogger(&config.Config{Log: config.Log{Level: "debug", Development: true}})

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := logging.NewLogger(&config.Config{Log: config.Log{Level: "loud"}})
		assert.Error(t, err)
	})
}

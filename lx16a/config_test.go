package lx16a

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-lx16a/logger"
)

func TestNewBusConfig_Defaults(t *testing.T) {
	cfg, err := newBusConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaudRate, cfg.baudRate)
	assert.Equal(t, DefaultReadTimeout, cfg.readTimeout)
	assert.True(t, cfg.checksumCheck)
	assert.True(t, cfg.strictReply)
	assert.NotNil(t, cfg.logger)
}

func TestNewBusConfig_Options(t *testing.T) {
	l := logger.GetLogger()

	cfg, err := newBusConfig(
		WithBaudRate(9600),
		WithReadTimeout(250*time.Millisecond),
		WithChecksumCheck(false),
		WithStrictReply(false),
		WithLogger(l),
	)
	require.NoError(t, err)

	assert.Equal(t, 9600, cfg.baudRate)
	assert.Equal(t, 250*time.Millisecond, cfg.readTimeout)
	assert.False(t, cfg.checksumCheck)
	assert.False(t, cfg.strictReply)
	assert.Equal(t, l, cfg.logger)
}

func TestWithBaudRate_Invalid(t *testing.T) {
	_, err := newBusConfig(WithBaudRate(0))
	assert.Error(t, err)

	_, err = newBusConfig(WithBaudRate(-115200))
	assert.Error(t, err)
}

func TestWithReadTimeout_Range(t *testing.T) {
	_, err := newBusConfig(WithReadTimeout(MinReadTimeout))
	assert.NoError(t, err)

	_, err = newBusConfig(WithReadTimeout(MaxReadTimeout))
	assert.NoError(t, err)

	_, err = newBusConfig(WithReadTimeout(MinReadTimeout - time.Millisecond))
	assert.Error(t, err)

	_, err = newBusConfig(WithReadTimeout(MaxReadTimeout + time.Second))
	assert.Error(t, err)
}

func TestWithLogger_Nil(t *testing.T) {
	_, err := newBusConfig(WithLogger(nil))
	assert.Error(t, err)
}

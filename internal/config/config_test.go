package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsLoadWithoutConfigFile(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	rl := cfg.GetRateLimit()
	assert.Equal(t, "memory", rl.Backend)
	assert.Equal(t, 2, rl.MaxRequests)

	window, err := cfg.GetDuration("ratelimit.window")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, window)

	sweep, err := cfg.GetDuration("ratelimit.sweep_frequency")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, sweep)

	assert.True(t, cfg.GetBool("endpoints.contact.require_verification"))
	assert.False(t, cfg.GetBool("endpoints.work_view.require_verification"))

	srv := cfg.GetServer()
	assert.Equal(t, "0.0.0.0:8080", srv.ListenAddress)
	assert.Equal(t, 65536, srv.MaxBodyBytes)

	email := cfg.GetEmail()
	assert.Equal(t, "ses", email.Transport)

	assert.Equal(t, "memory", cfg.GetString("storage.type"))
	assert.Equal(t, "info", cfg.GetString("logging.level"))
	assert.Equal(t, "json", cfg.GetString("logging.format"))
}

func TestViperOverridesBeatDefaults(t *testing.T) {
	v := NewEmptyViper()
	v.Set("ratelimit.max_requests", 5)
	v.Set("ratelimit.window", "30m")
	v.Set("endpoints.contact.require_verification", false)

	cfg := NewFromViper(v)

	assert.Equal(t, 5, cfg.GetRateLimit().MaxRequests)

	window, err := cfg.GetDuration("ratelimit.window")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, window)

	assert.False(t, cfg.GetBool("endpoints.contact.require_verification"))
}

func TestGetViperExposesBackingInstance(t *testing.T) {
	v := NewEmptyViper()
	cfg := NewFromViper(v)

	require.Same(t, v, cfg.GetViper())
	assert.Equal(t, 2, cfg.GetViper().GetInt("ratelimit.max_requests"))
}

func TestGetDurationRejectsMalformedValue(t *testing.T) {
	v := NewEmptyViper()
	v.Set("email.send_timeout", "soon")

	cfg := NewFromViper(v)

	_, err := cfg.GetDuration("email.send_timeout")
	assert.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigAndViper(t *testing.T) {
	cfg, v, err := NewConfigAndViper("./test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "../tls/authkey.p8", cfg.Apns.AuthKeyPath)
	assert.Equal(t, "ABC123DEFG", cfg.Apns.KeyID)
	assert.Equal(t, "DEF123GHIJ", cfg.Apns.TeamID)
	assert.Equal(t, "me.fin.bark", cfg.Apns.Topic)
	assert.Equal(t, 2, cfg.Apns.ConcurrentWorkers)
	assert.Equal(t, 5*time.Second, v.GetDuration("apns.requestTimeout"))
}

func TestNewConfigAndViperMissingFile(t *testing.T) {
	_, _, err := NewConfigAndViper("./nope.yaml")
	require.Error(t, err)
}

func TestGetDevicesArray(t *testing.T) {
	cfg := &Config{Apns: Apns{Devices: " device-a, device-b ,,device-c"}}
	assert.Equal(t, []string{"device-a", "device-b", "device-c"}, cfg.GetDevicesArray())

	cfg.Apns.Devices = ""
	assert.Empty(t, cfg.GetDevicesArray())
}

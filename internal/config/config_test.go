package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("imu_fetch", nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.False(t, cfg.Simulate)
	assert.Empty(t, cfg.TextOutputFile)
	assert.Empty(t, cfg.JSONOutputFile)
	assert.False(t, cfg.EnableMQTT)
	assert.Equal(t, 10, cfg.NumPoints)
	assert.Zero(t, cfg.TimeLimit)
	assert.False(t, cfg.ShowVersion)
	assert.Equal(t, DefaultMQTTConfig, cfg.MQTTConfigFile)
	assert.False(t, cfg.MQTTConfigSet)
}

func TestParse_AllFlags(t *testing.T) {
	cfg, err := Parse("imu_fetch", []string{
		"--target", "10.0.0.5",
		"--use_simulated_data",
		"--text_output_file", "out.txt",
		"--json_output_file", "out.json",
		"--enable_mqtt",
		"--num_points", "0",
		"--time_limit_s", "30",
		"--mqtt_config", "broker.txt",
		"--redis_addr", "localhost:6379",
		"--debug",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, RunConfig{
		Target:         "10.0.0.5",
		Simulate:       true,
		TextOutputFile: "out.txt",
		JSONOutputFile: "out.json",
		EnableMQTT:     true,
		NumPoints:      0,
		TimeLimit:      30 * time.Second,
		MQTTConfigFile: "broker.txt",
		MQTTConfigSet:  true,
		RedisAddr:      "localhost:6379",
		Debug:          true,
	}, cfg)
}

func TestParse_ShorthandsAndAlias(t *testing.T) {
	cfg, err := Parse("imu_fetch", []string{"-t", "lidar.local", "--use_sumulated_data", "-v"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "lidar.local", cfg.Target)
	assert.True(t, cfg.Simulate)
	assert.True(t, cfg.ShowVersion)
}

func TestParse_InvalidNumbers(t *testing.T) {
	for _, args := range [][]string{
		{"--num_points", "ten"},
		{"--num_points", "-1"},
		{"--time_limit_s", "1.5"},
		{"--time_limit_s", "-3"},
		{"--no_such_flag"},
		{"stray"},
	} {
		_, err := Parse("imu_fetch", args, io.Discard)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "args %v", args)
	}
}

func TestParse_Help(t *testing.T) {
	_, err := Parse("imu_fetch", []string{"--help"}, io.Discard)
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "imu_fetch: v2.1 (6/28/2022) by JRD", Version("imu_fetch"))
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mqtt.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadBroker_MissingOptionalFileGivesDefaults(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	os.Unsetenv(PasswordEnv)

	b, err := LoadBroker(filepath.Join(t.TempDir(), "absent.txt"), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultBroker(), b)
	assert.Equal(t, "ssl://hurricane.essie.ufl.edu:1884", b.URL())
}

func TestLoadBroker_MissingRequiredFile(t *testing.T) {
	_, err := LoadBroker(filepath.Join(t.TempDir(), "absent.txt"), true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBroker_File(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	os.Unsetenv(PasswordEnv)

	path := writeFile(t, `
# local test broker
MQTT_BROKER_HOST = localhost
MQTT_BROKER_PORT=1883
MQTT_USERNAME=bob
MQTT_PASSWORD=secret
MQTT_TOPIC=test/imu
MQTT_CLIENT_ID=bench
MQTT_KEEPALIVE_S=15
MQTT_CONNECT_TIMEOUT_S=2
MQTT_TLS=false
`)
	b, err := LoadBroker(path, true)
	require.NoError(t, err)

	assert.Equal(t, Broker{
		Host:           "localhost",
		Port:           1883,
		Username:       "bob",
		Password:       "secret",
		Topic:          "test/imu",
		ClientID:       "bench",
		KeepAlive:      15 * time.Second,
		ConnectTimeout: 2 * time.Second,
		TLS:            false,
	}, b)
	assert.Equal(t, "tcp://localhost:1883", b.URL())
}

func TestLoadBroker_PasswordFromEnv(t *testing.T) {
	t.Setenv(PasswordEnv, "from-env")
	b, err := LoadBroker(writeFile(t, "MQTT_PASSWORD=from-file\n"), true)
	require.NoError(t, err)
	assert.Equal(t, "from-env", b.Password)
}

func TestLoadBroker_Errors(t *testing.T) {
	for name, body := range map[string]string{
		"no equals":   "MQTT_BROKER_HOST\n",
		"unknown key": "MQTT_NOPE=1\n",
		"bad port":    "MQTT_BROKER_PORT=abc\n",
		"port range":  "MQTT_BROKER_PORT=70000\n",
		"bad tls":     "MQTT_TLS=maybe\n",
		"empty host":  "MQTT_BROKER_HOST=\n",
		"empty topic": "MQTT_TOPIC=\n",
	} {
		_, err := LoadBroker(writeFile(t, body), true)
		assert.Error(t, err, name)
	}
}

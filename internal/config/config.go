// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// Release information.
const (
	ReleaseAuthor  = "JRD"
	ReleaseDate    = "6/28/2022"
	ReleaseVersion = "v2.1"
)

const (
	DefaultTarget     = "192.168.26.26"
	DefaultNumPoints  = 10
	DefaultMQTTConfig = "./imu_fetch_mqtt.txt"
)

// ErrInvalidConfiguration is wrapped by every option parsing failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// RunConfig is built once at startup and passed by value; nothing mutates it
// after Parse returns.
type RunConfig struct {
	Target         string
	Simulate       bool
	TextOutputFile string // "" disables the text sink
	JSONOutputFile string // "" disables the JSON sink
	EnableMQTT     bool
	NumPoints      int           // 0 = unlimited
	TimeLimit      time.Duration // whole seconds, 0 = unlimited

	MQTTConfigFile string
	MQTTConfigSet  bool   // --mqtt_config given explicitly
	RedisAddr      string // "" disables the redis sink
	Debug          bool
	ShowVersion    bool
}

// Parse resolves command-line arguments (without the program name) into a
// RunConfig. Usage and parse errors are written to out.
func Parse(name string, args []string, out io.Writer) (RunConfig, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.SortFlags = false

	var (
		cfg       RunConfig
		numPoints string
		timeLimit string
	)

	fs.StringVarP(&cfg.Target, "target", "t", DefaultTarget, "hostname or IP of the sensor (or a ws:// URL)")
	fs.BoolVar(&cfg.Simulate, "use_simulated_data", false, "use simulated instead of real data")
	fs.BoolVar(&cfg.Simulate, "use_sumulated_data", false, "alias of --use_simulated_data")
	_ = fs.MarkHidden("use_sumulated_data")
	fs.StringVar(&cfg.TextOutputFile, "text_output_file", "", "text output file name (default none)")
	fs.StringVar(&cfg.JSONOutputFile, "json_output_file", "", "json output file name (default none)")
	fs.BoolVar(&cfg.EnableMQTT, "enable_mqtt", false, "enable MQTT streaming")
	// Numeric options are taken as strings so a malformed value maps to
	// ErrInvalidConfiguration instead of pflag's own error text.
	fs.StringVar(&numPoints, "num_points", strconv.Itoa(DefaultNumPoints), "num. bursts to collect (0=unlimited)")
	fs.StringVar(&timeLimit, "time_limit_s", "0", "time to collect in seconds (0=unlimited)")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "output program version")
	fs.StringVar(&cfg.MQTTConfigFile, "mqtt_config", DefaultMQTTConfig, "path to MQTT broker settings file")
	fs.StringVar(&cfg.RedisAddr, "redis_addr", "", "host:port of a redis server to hold the latest burst (default none)")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return RunConfig{}, err
		}
		return RunConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if fs.NArg() > 0 {
		return RunConfig{}, fmt.Errorf("%w: unexpected arguments %q", ErrInvalidConfiguration, fs.Args())
	}

	n, err := parseCount("num_points", numPoints)
	if err != nil {
		return RunConfig{}, err
	}
	cfg.NumPoints = n

	secs, err := parseCount("time_limit_s", timeLimit)
	if err != nil {
		return RunConfig{}, err
	}
	cfg.TimeLimit = time.Duration(secs) * time.Second

	cfg.MQTTConfigSet = fs.Changed("mqtt_config")
	return cfg, nil
}

func parseCount(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: --%s %q is not an integer", ErrInvalidConfiguration, name, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: --%s must be >= 0, got %d", ErrInvalidConfiguration, name, n)
	}
	return n, nil
}

// Version returns the single-line version banner for program name.
func Version(name string) string {
	return fmt.Sprintf("%s: %s (%s) by %s", name, ReleaseVersion, ReleaseDate, ReleaseAuthor)
}

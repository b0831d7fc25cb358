package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/relabs-tech/imu_fetch/internal/app"
	"github.com/relabs-tech/imu_fetch/internal/config"
)

func main() {
	fs := pflag.NewFlagSet("imu_console", pflag.ContinueOnError)
	configPath := fs.String("mqtt_config", config.DefaultMQTTConfig, "path to MQTT broker settings file")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("failed to parse options: %v", err)
	}

	app.SetupLogging(*debug)
	log.Println("starting IMU console (MQTT subscriber)")

	broker, err := config.LoadBroker(*configPath, fs.Changed("mqtt_config"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunConsole(ctx, broker, os.Stdout); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

package main

import (
	"context"
	_ "embed"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dailytemp/cli"
	"dailytemp/config"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load(configRaw)
	if err != nil {
		log.Printf("load config: %s\n", err)
		stop()
		os.Exit(1)
	}

	cmd, err := cli.New(cfg, cli.NewWeather)
	if err != nil {
		log.Printf("new cli: %s\n", err)
		stop()
		os.Exit(1)
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	code := cli.Execute(ctx, cmd, os.Args[1:])
	stop()
	os.Exit(code)
}

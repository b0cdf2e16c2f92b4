package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rollcmd "github.com/louisbranch/dicenotation/internal/cmd/roll"
	entrypoint "github.com/louisbranch/dicenotation/internal/platform/cmd"
	"github.com/louisbranch/dicenotation/internal/platform/config"
)

// main rolls every notation given on the command line.
func main() {
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceRoll))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rollcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("roll: %v", err)
	}
}

// Command migrate applies or rolls back the database schema.
//
//	migrate [-config file] up|down|status
package main

import (
	"flag"
	"fmt"
	"os"

	"leadership-dashboard/internal/config"
	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/migrations"
)

func main() {
	configFile := flag.String("config", "", "config file path")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [-config file] up|down|status")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("dotenv load failed", "err", err)
	}
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenSQLDB()
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	var run func() error
	switch flag.Arg(0) {
	case "up":
		run = func() error { return migrations.Up(db) }
	case "down":
		run = func() error { return migrations.Down(db) }
	case "status":
		run = func() error { return migrations.Status(db) }
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		logger.Error("migrate failed", "cmd", flag.Arg(0), "err", err)
		os.Exit(1)
	}
	logger.Info("migrate done", "cmd", flag.Arg(0))
}

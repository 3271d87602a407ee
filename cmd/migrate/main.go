// File: cmd/migrate/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"user-service/internal/config"
	"user-service/internal/database"
)

var (
	loadConfig  = config.Load
	migrateUp   = database.RunMigrations
	migrateDown = database.RollbackAll
	exitFunc    = os.Exit
	commandLine = flag.CommandLine
	osArgs      = func() []string { return os.Args[1:] }
)

func main() {
	action, err := runMigrate(osArgs())
	if err != nil {
		log.Printf("migration %s failed: %v", action, err)
		exitFunc(1)
		return
	}
	log.Printf("migration %s completed", action)
}

// runMigrate 依參數執行 up（預設）或 down；down 會退回所有 migration
func runMigrate(args []string) (string, error) {
	if err := commandLine.Parse(args); err != nil {
		return "", err
	}
	action := "up"
	if commandLine.NArg() > 0 {
		action = commandLine.Arg(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		return action, err
	}

	switch action {
	case "up":
		return action, migrateUp(cfg.DatabaseURL)
	case "down":
		return action, migrateDown(cfg.DatabaseURL)
	default:
		return action, fmt.Errorf("unsupported action %q", action)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/atinyakov/AccountKeeper/internal/client"
	"github.com/atinyakov/AccountKeeper/internal/logger"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/atinyakov/AccountKeeper/internal/storage"
	"github.com/atinyakov/AccountKeeper/internal/store"
)

var (
	version   string
	buildDate string
)

// main parses command-line flags and starts the interactive shell over a
// file-backed account store.
func main() {
	var (
		dir      string
		key      string
		level    string
		seedDemo bool
		showVer  bool
	)

	flag.StringVar(&dir, "dir", "data", "directory for file storage")
	flag.StringVar(&key, "key", store.DefaultKey, "storage key of the account list")
	flag.StringVar(&level, "log-level", "warn", "log level")
	flag.BoolVar(&seedDemo, "demo", false, "seed demo accounts into empty storage")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("AccountKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	lg := logger.New()
	if err := lg.Init(level); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Log.Sync() }()

	slot, err := storage.NewFile(dir)
	if err != nil {
		log.Fatal(err)
	}

	accounts := store.New(slot,
		store.WithKey(key),
		store.WithDemoSeed(seedDemo),
		store.WithLogger(lg.Log),
	)
	if err := accounts.LoadFromStorage(); err != nil {
		log.Fatal(err)
	}

	client.NewShell(service.NewAccountService(accounts), os.Stdin, os.Stdout).Run()
}

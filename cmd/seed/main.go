package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/jaswdr/faker"
	"golang.org/x/term"

	"scrib/pkg/auth"
	"scrib/pkg/config"
	"scrib/pkg/repository"
	"scrib/pkg/storage"
)

func main() {
	configPath := flag.String("config", config.GetConfigFilePath(), "path to the config file")
	notes := flag.Int("notes", 5, "number of text notes to create")
	lists := flag.Int("lists", 3, "number of checklists to create")
	reminders := flag.Int("reminders", 4, "number of reminders to create")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeding %s (%s backend)\n", cfg.DataDir, cfg.Backend)
	fmt.Printf("Password for %s: ", auth.DemoEmail)
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read password: %v\n", err)
		os.Exit(1)
	}

	if !auth.NewManager().CheckCredentials(auth.DemoEmail, strings.TrimSpace(string(pw))) {
		fmt.Fprintln(os.Stderr, "Invalid password")
		os.Exit(1)
	}

	ctx := context.Background()
	gw, closeStore, err := storage.Open(ctx, cfg.Backend, cfg.DataDir, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	repo := repository.New(gw)
	seeder := newSeeder(repo, faker.New(), time.Now())

	created, err := seeder.seed(ctx, *notes, *lists, *reminders)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seeding stopped after %d items: %v\n", created, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d items\n", created)
}

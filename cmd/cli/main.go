package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"url-admin/pkg/cli"
	"url-admin/pkg/cli/logger"
	"url-admin/pkg/cli/urls"
	"url-admin/pkg/config"
)

func main() {
	var (
		loginMode  = flag.Bool("login", false, "Log in and store the session token")
		username   = flag.String("username", "", "Username for --login")
		logoutMode = flag.Bool("logout", false, "Forget the stored session token")
		listMode   = flag.Bool("list", false, "List all URLs")
		addURL     = flag.String("add", "", "Add a URL")
		inactive   = flag.Bool("inactive", false, "With --add, create the URL inactive")
		deleteID   = flag.String("delete", "", "Delete the URL with this ID")
		setActive  = flag.String("set-active", "", "Set a URL's active flag (format: ID=true|false)")
		testRandom = flag.Bool("test-random", false, "Fetch one random active URL from the public endpoint")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if dir, err := config.Dir(); err == nil {
		if err := logger.Init(filepath.Join(dir, "logs"), cfg.Log.Level); err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
	}
	defer logger.CloseLog()

	app := cli.NewApp(cfg)
	defer app.Close()

	// Handle config commands first (don't need the backend)
	if *configShow {
		exitOnError(app.ShowConfig())
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			log.Fatalf("failed to set config: %v", err)
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *loginMode:
		exitOnError(app.Login(ctx, *username))
	case *logoutMode:
		exitOnError(app.Logout(ctx))
	case *listMode:
		exitOnError(app.ListURLs(ctx))
	case *addURL != "":
		exitOnError(app.AddURL(ctx, *addURL, !*inactive))
	case *deleteID != "":
		exitOnError(app.DeleteURL(ctx, *deleteID))
	case *setActive != "":
		exitOnError(app.SetActive(ctx, *setActive))
	case *testRandom:
		exitOnError(app.TestRandom(ctx))
	default:
		// Interactive TUI mode
		exitOnError(app.Run(ctx))
	}
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	urls.WriteToStderr(urls.FormatErrorMessage(err))
	logger.CloseLog()
	os.Exit(1)
}

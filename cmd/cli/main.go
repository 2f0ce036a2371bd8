package main

import (
	"flag"
	"log"
	"os"

	"github.com/taskboard/taskboard-be/internal/client/api"
	"github.com/taskboard/taskboard-be/internal/client/cli"
	"github.com/taskboard/taskboard-be/internal/client/session"
)

func main() {
	defaultURL := os.Getenv("TASKBOARD_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:4000"
	}
	apiURL := flag.String("api", defaultURL, "base URL of the Taskboard API")
	flag.Parse()

	store, err := session.DefaultStore()
	if err != nil {
		log.Fatalf("Failed to locate session file: %v", err)
	}
	sessions, err := session.NewManager(store)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	app := cli.New(api.New(*apiURL), sessions)
	app.Run()
}

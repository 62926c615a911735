// Command grove-term shows the point-cloud scene in a terminal. WASD/QE move
// the camera, arrow keys orbit, +/- zoom, 1-9 run panel actions, Tab toggles
// the panel and Escape quits.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/grove"
	"github.com/phanxgames/grove/term"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		logPath    = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		grove.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := grove.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = grove.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	r := term.NewRenderer(screen)
	r.ShowPanel = true
	stage := grove.NewStage(cfg, grove.WithRenderer(r))
	stage.PopulateDemo()
	grove.StandardActions(stage)
	v := term.NewViewer(stage, screen, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = v.Run(ctx)
	stop()
	screen.Fini()
	if err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}

// Command grove-snap renders the point-cloud scene headlessly and writes a PNG.
// An optional JSON script drives input and actions; its screenshot steps are
// written to the screenshot directory as the script runs.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/phanxgames/grove"
	"github.com/phanxgames/grove/snapshot"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		scriptPath = flag.String("script", "", "JSON input script")
		frames     = flag.Int("frames", 60, "frames to run (after the script finishes)")
		fps        = flag.Int("fps", 60, "simulated frame rate")
		output     = flag.String("output", "grove.png", "output file")
		shots      = flag.String("screenshots", "screenshots", "screenshot directory")
		verbose    = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		grove.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := grove.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = grove.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	r := snapshot.New(cfg.Window.Width, cfg.Window.Height)
	defer r.Close()

	stage := grove.NewStage(cfg, grove.WithRenderer(r))
	stage.ScreenshotDir = *shots
	stage.PopulateDemo()
	grove.StandardActions(stage)

	var runner *grove.TestRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		if runner, err = grove.LoadTestScript(data); err != nil {
			log.Fatal(err)
		}
		stage.SetTestRunner(runner)
	}

	dt := time.Second / time.Duration(max(*fps, 1))
	step := func() {
		stage.Frame(dt)
		if err := r.Err(); err != nil {
			log.Fatal(err)
		}
		if stage.PendingScreenshots() {
			stage.FlushScreenshots(r.Image())
		}
	}
	for runner != nil && !runner.Done() {
		step()
	}
	for i := 0; i < *frames; i++ {
		step()
	}

	if err := r.SavePNG(*output); err != nil {
		log.Fatalf("save: %v", err)
	}
	w, h := r.Size()
	log.Printf("Snapshot saved to %s (%dx%d, %d objects)\n", *output, w, h, stage.Registry.Len())
}

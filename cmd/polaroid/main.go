// Polaroid shows an interactive stack of framed photos. Drag a photo to move
// it; click one to reveal its message.
//
// Configuration comes from POLAROID_* environment variables; flags override
// them.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phanxgames/polaroid"
)

func main() {
	log.SetPrefix("[polaroid] ")
	log.SetFlags(log.LstdFlags)

	cfg, err := polaroid.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	flag.StringVar(&cfg.AlbumPath, "album", cfg.AlbumPath, "YAML album file (default: built-in photos)")
	flag.StringVar(&cfg.ShareURL, "share", cfg.ShareURL, "URL to show as a QR code")
	flag.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "JSON interaction script to play, then exit")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log frame stats and interaction events")
	flag.BoolVar(&cfg.ShowFPS, "fps", cfg.ShowFPS, "show the FPS overlay")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	flag.BoolVar(&cfg.IdleSway, "sway", cfg.IdleSway, "gently rotate photos that are not held")
	flag.Parse()

	album := polaroid.DefaultAlbum()
	if cfg.AlbumPath != "" {
		album, err = polaroid.LoadAlbum(cfg.AlbumPath)
		if err != nil {
			log.Fatalf("album: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := polaroid.Run(ctx, cfg, album, log.Default()); err != nil {
		log.Fatalf("%v", err)
	}
}

package main

import (
	"encoding/json"
	"io"
	"log"
	"os"
	_ "time/tzdata"

	"github.com/photoatlas/mediameta"
	"github.com/photoatlas/mediameta/gps"
	"github.com/photoatlas/mediameta/internal/config"
	"github.com/photoatlas/mediameta/tagmap"
)

// mediameta reads already-extracted tag JSON (the output of `exiftool -j -n`)
// from a file argument or stdin and prints the reconciled result. It never
// touches the media file itself.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var raw []byte
	if len(os.Args) > 1 {
		raw, err = os.ReadFile(os.Args[1])
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal(err)
	}

	mapping, err := tagmap.FromJSON(raw)
	if err != nil {
		log.Fatal(err)
	}

	analyzer := mediameta.New(nil)
	if cfg.LookupTimezone {
		finder, err := gps.NewTimezoneFinder()
		if err != nil {
			log.Printf("timezone lookup unavailable: %v", err)
		} else {
			analyzer.Zones = finder
		}
	}

	kind := mediameta.DetectKind(mapping)
	switch cfg.Kind {
	case "photo":
		kind = mediameta.KindPhoto
	case "video":
		kind = mediameta.KindVideo
	}

	result, err := analyzer.Resolve(mapping, kind)
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		log.Fatal(err)
	}
}

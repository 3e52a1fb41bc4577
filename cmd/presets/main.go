package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"
)

// Fetches shared world preset bundles (seed lists and tuning configs) into
// a local directory so they can be passed to worldgen via -config.
func main() {
	var (
		base = flag.String("base", "https://github.com/dan-garden/2dcraft-presets.git", "base url")
		pack = flag.String("pack", "classic", "preset pack name")
		out  = flag.String("o", "./presets", "output dir path")
	)
	flag.Parse()

	if *out == "" {
		panic("output dir path required")
	}

	if *pack == "" {
		panic("preset pack name required")
	}

	path := fmt.Sprintf("%s/%s", *out, *pack)

	if err := os.RemoveAll(path); err != nil {
		panic(err)
	}

	log.Default().Printf("start downloading preset pack %s", path)

	url := fmt.Sprintf("git::%s//packs/%s", *base, *pack)

	if err := get.Get(path, url); err != nil {
		panic(err)
	}

	log.Default().Printf("done downloading preset pack %s", path)
}

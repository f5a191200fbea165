package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/assetviewer/assets"
	"github.com/milk9111/assetviewer/replay"
	"github.com/milk9111/assetviewer/settings"
)

func main() {
	log.SetFlags(0)
	configPath := flag.String("config", "", "settings override (YAML)")
	modelName := flag.String("model", "cube.gltf", "bundled model to replay against")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: replay [flags] <script.tengo>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	s, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	mesh, err := assets.LoadModel(*modelName)
	if err != nil {
		log.Fatalf("replay: load %s: %v", *modelName, err)
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	frames, err := replay.Parse(src)
	if err != nil {
		log.Fatal(err)
	}
	res, err := replay.Run(frames, &s, mesh)
	if err != nil {
		log.Fatal(err)
	}

	for _, text := range res.Copied {
		fmt.Println("copied:", text)
	}
	fmt.Println(res)
}

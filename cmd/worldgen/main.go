package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"

	"github.com/dan-garden/2dcraft-sub001/internal/config"
	"github.com/dan-garden/2dcraft-sub001/pkg/world/gen"
)

var blockColors = map[gen.Block]color.RGBA{
	gen.BlockAir:          {135, 206, 235, 255},
	gen.BlockDirt:         {134, 96, 67, 255},
	gen.BlockGrass:        {95, 159, 53, 255},
	gen.BlockStone:        {128, 128, 128, 255},
	gen.BlockDeepstone:    {70, 70, 80, 255},
	gen.BlockSand:         {219, 207, 163, 255},
	gen.BlockSandstone:    {196, 178, 128, 255},
	gen.BlockSnow:         {240, 248, 255, 255},
	gen.BlockIce:          {160, 200, 255, 255},
	gen.BlockMud:          {92, 72, 54, 255},
	gen.BlockClay:         {159, 164, 177, 255},
	gen.BlockGravel:       {150, 142, 134, 255},
	gen.BlockWater:        {52, 108, 202, 255},
	gen.BlockLava:         {230, 110, 20, 255},
	gen.BlockCoalOre:      {54, 54, 54, 255},
	gen.BlockIronOre:      {197, 168, 145, 255},
	gen.BlockCopperOre:    {186, 110, 64, 255},
	gen.BlockGoldOre:      {246, 208, 61, 255},
	gen.BlockCrystalOre:   {170, 96, 240, 255},
	gen.BlockWood:         {102, 81, 50, 255},
	gen.BlockLeaves:       {58, 122, 40, 255},
	gen.BlockCactus:       {58, 132, 66, 255},
	gen.BlockMushroomStem: {222, 214, 197, 255},
	gen.BlockMushroomCap:  {186, 52, 52, 255},
	gen.BlockDeadBush:     {148, 112, 60, 255},
	gen.BlockStalactite:   {168, 168, 176, 255},
	gen.BlockMoss:         {72, 112, 48, 255},
	gen.BlockVines:        {64, 130, 54, 255},
	gen.BlockGlowshroom:   {120, 220, 190, 255},
	gen.BlockCrystalShard: {196, 140, 250, 255},
	gen.BlockFossil:       {224, 216, 192, 255},
}

func main() {
	cfg := config.DefaultConfig()

	var (
		configPath = flag.String("config", "world.yaml", "config file path")
		out        = flag.String("o", "world.png", "preview image output path")
		spanChunks = flag.Int("span", 32, "horizontal span to render, in chunks")
		minChunkY  = flag.Int("min-cy", -10, "lowest chunk row to render")
		maxChunkY  = flag.Int("max-cy", 3, "highest chunk row to render")
	)
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.ChunkWidth, "chunk-width", cfg.ChunkWidth, "chunk width in tiles")
	flag.IntVar(&cfg.ChunkHeight, "chunk-height", cfg.ChunkHeight, "chunk height in tiles")
	flag.IntVar(&cfg.MinBiomeWidth, "min-biome-width", cfg.MinBiomeWidth, "minimum contiguous biome run in chunks")
	flag.IntVar(&cfg.BlendBand, "blend-band", cfg.BlendBand, "boundary height blend half-width in tiles")
	flag.Float64Var(&cfg.BaseHeight, "base-height", cfg.BaseHeight, "unshaped terrain base height")
	flag.IntVar(&cfg.CaveProbeStride, "cave-stride", cfg.CaveProbeStride, "cave probe stride in tiles")
	flag.IntVar(&cfg.OreProbeStride, "ore-stride", cfg.OreProbeStride, "ore probe stride in tiles")
	flag.IntVar(&cfg.StructureProbeStride, "structure-stride", cfg.StructureProbeStride, "structure probe stride in tiles")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile, err := config.Load(*configPath)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	opts := gen.DefaultOptions()
	opts.ChunkWidth = cfg.ChunkWidth
	opts.ChunkHeight = cfg.ChunkHeight
	opts.MinBiomeWidth = cfg.MinBiomeWidth
	opts.BlendBand = cfg.BlendBand
	opts.BaseHeight = cfg.BaseHeight
	opts.CaveProbeStride = cfg.CaveProbeStride
	opts.OreProbeStride = cfg.OreProbeStride
	opts.StructureProbeStride = cfg.StructureProbeStride

	g := gen.NewGenerator(cfg.Seed, opts)

	log.Info("rendering preview",
		"seed", cfg.Seed,
		"span_chunks", *spanChunks,
		"chunk_rows", *maxChunkY-*minChunkY+1)

	img := render(g, opts, *spanChunks, *minChunkY, *maxChunkY)

	f, err := os.Create(*out)
	if err != nil {
		log.Error("create output", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Error("encode preview", "error", err)
		os.Exit(1)
	}

	logBiomes(log, g, opts.ChunkWidth, *spanChunks)
	log.Info("preview written", "path", *out, "bounds", img.Bounds())
}

// render assembles every chunk in the requested window and paints it into
// one image. Image y grows downward, world y grows upward.
func render(g *gen.Generator, opts gen.Options, span, minCY, maxCY int) *image.RGBA {
	w := span * opts.ChunkWidth
	h := (maxCY - minCY + 1) * opts.ChunkHeight
	topY := (maxCY+1)*opts.ChunkHeight - 1

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for cx := -span / 2; cx < span-span/2; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			grid := g.AssembleChunk(cx, cy, opts.ChunkWidth, opts.ChunkHeight)
			for i := 0; i < grid.Width; i++ {
				for j := 0; j < grid.Height; j++ {
					x, y := grid.MinX+i, grid.MinY+j
					px := x + (span/2)*opts.ChunkWidth
					py := topY - y
					img.SetRGBA(px, py, blockColors[grid.BlockAt(x, y)])
				}
			}
		}
	}
	return img
}

// logBiomes reports the biome run layout across the rendered span.
func logBiomes(log *slog.Logger, g *gen.Generator, chunkWidth, span int) {
	counts := make(map[string]int)
	for ci := -span / 2; ci < span-span/2; ci++ {
		counts[g.BiomeAt(ci*chunkWidth).Name]++
	}
	for name, n := range counts {
		log.Info("biome coverage", "biome", name, "chunks", n)
	}
}

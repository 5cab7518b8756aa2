package main

import (
	"flag"
	"log"
	"os"

	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/infrastructure/canvas"
	"github.com/vitos/coin_wallet/internal/usecase"
)

func main() {
	period := flag.String("period", string(domain.DefaultPeriod), "24h, 7d or 30d")
	out := flag.String("out", "chart.png", "output PNG file")
	width := flag.Int("width", 640, "image width")
	height := flag.Int("height", 320, "image height")
	flag.Parse()

	ds := usecase.NewPriceSeriesProvider().Dataset(domain.ParsePeriod(*period))

	surface := canvas.New(*width, *height)
	chart, err := canvas.NewRenderer().NewChart(surface, domain.NewLineChartConfig(ds))
	if err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}
	defer chart.Destroy()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer f.Close()

	if err := surface.WritePNG(f); err != nil {
		log.Fatalf("Failed to write PNG: %v", err)
	}
	log.Printf("Rendered %s chart (%d points) to %s", ds.Period, len(ds.Prices), *out)
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/camera"
	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/imaging"
	"github.com/kdduha/chiliguard/internal/inference"
	"github.com/kdduha/chiliguard/internal/logger"
)

var formatDirs = []string{"jpg", "png", "webp"}

// Runs every image under ./data/<format>/ through the normalizer and the
// inference service and prints a markdown summary.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	normalizer := imaging.NewNormalizer(cfg.Image.Quality, cfg.Image.MaxDimension)
	normalizer.MaxPixels = cfg.Image.MaxPixels
	client := inference.NewClient(cfg.API, log)
	limit := cfg.Image.MaxUploadMB << 20

	var results []BenchResult
	for _, format := range formatDirs {
		dataPath := filepath.Join(".", "data", format)

		images, _ := os.ReadDir(dataPath)
		for _, img := range images {
			res := benchmarkImage(ctx, normalizer, client, filepath.Join(dataPath, img.Name()), format, limit)
			if res.Err != nil {
				log.Warn("Benchmark failed", zap.String("file", res.File), zap.Error(res.Err))
			} else {
				log.Info("Benchmark ok",
					zap.String("file", res.File),
					zap.String("class", res.Class),
					zap.Duration("normalize", res.Normalize),
					zap.Duration("predict", res.Predict),
				)
			}
			results = append(results, res)
		}
	}

	printMarkdown(results)
}

func benchmarkImage(
	ctx context.Context,
	normalizer *imaging.Normalizer,
	client *inference.Client,
	filePath, format string,
	limit int64,
) BenchResult {
	res := BenchResult{File: filepath.Base(filePath), Format: format}

	capture, err := camera.FromFile(filePath, limit)
	if err != nil {
		res.Err = err
		return res
	}
	res.SizeIn = int64(capture.Size())

	start := time.Now()
	normalized, err := normalizer.Normalize(ctx, capture)
	res.Normalize = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.SizeOut = int64(normalized.Size())

	start = time.Now()
	result, err := client.Predict(ctx, normalized)
	res.Predict = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.Class = result.Class
	return res
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Format]
		a.Count++
		a.Normalize += r.Normalize
		a.Predict += r.Predict
		a.TotalBytesIn += r.SizeIn
		a.TotalBytesOut += r.SizeOut
		m[r.Format] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Print("\n## Benchmark Results\n\n")
	fmt.Println("| Format | Images | Avg Normalize | Avg Predict | Avg Size In | Avg Size Out |")
	fmt.Println("|--------|--------|---------------|-------------|-------------|--------------|")

	agg := aggregate(results)
	formats := make([]string, 0, len(agg))
	for format := range agg {
		formats = append(formats, format)
	}
	slices.Sort(formats)

	var total Agg
	for _, format := range formats {
		a := agg[format]
		printRow(format, a)
		total.Count += a.Count
		total.Normalize += a.Normalize
		total.Predict += a.Predict
		total.TotalBytesIn += a.TotalBytesIn
		total.TotalBytesOut += a.TotalBytesOut
	}
	if total.Count > 0 {
		printRow("**ALL**", total)
	}
}

func printRow(label string, a Agg) {
	n := time.Duration(a.Count)
	fmt.Printf("| %s | %d | %v | %v | %s | %s |\n",
		label,
		a.Count,
		(a.Normalize / n).Round(time.Millisecond),
		(a.Predict / n).Round(time.Millisecond),
		humanBytes(a.TotalBytesIn/int64(a.Count)),
		humanBytes(a.TotalBytesOut/int64(a.Count)),
	)
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

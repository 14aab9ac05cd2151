// Command datagen is the one-shot generator for the sample metrics CSVs
// consumed by the analytics service.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/datagen"
	"github.com/insightpulse/service-analytics/internal/export"
	"github.com/insightpulse/service-analytics/internal/logger"
	"github.com/insightpulse/service-analytics/internal/models"
)

func main() {
	days := flag.Int("days", datagen.DefaultDays, "number of days of history to generate")
	seed := flag.Int64("seed", 42, "random seed")
	outDir := flag.String("out", "data", "output directory")
	flag.Parse()

	zlog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		zlog.Fatal("Failed to create output directory", zap.Error(err))
	}

	gen := datagen.New(*days, *seed)
	daily := gen.Daily(models.NewDate(time.Now()))
	weekly := datagen.WeeklyAggregates(daily)

	dailyPath := filepath.Join(*outDir, "daily_metrics.csv")
	if err := writeCSV(dailyPath, func(f *os.File) error {
		return export.WriteDailyCSV(f, daily)
	}); err != nil {
		zlog.Fatal("Failed to write daily metrics", zap.Error(err))
	}

	weeklyPath := filepath.Join(*outDir, "weekly_metrics.csv")
	if err := writeCSV(weeklyPath, func(f *os.File) error {
		return export.WriteWeeklyCSV(f, weekly)
	}); err != nil {
		zlog.Fatal("Failed to write weekly metrics", zap.Error(err))
	}

	zlog.Info("Sample data generated",
		zap.String("daily", dailyPath),
		zap.Int("daily_rows", len(daily)),
		zap.String("weekly", weeklyPath),
		zap.Int("weekly_rows", len(weekly)),
	)
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

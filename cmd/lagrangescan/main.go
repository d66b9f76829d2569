package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lagrangescan/pkg/datasource"
	"lagrangescan/pkg/lagrangian"
	"lagrangescan/pkg/plot"
	"lagrangescan/pkg/report"
)

const disclaimer = `**Disclaimer:** This code is presented solely for educational purposes, illustrating a conceptual trading strategy. The signal is highly simplified and should not be considered suitable for real-world trading. Trading in financial markets carries substantial risk; conduct thorough independent research and seek professional financial advice before making any trading decisions.`

type runConfig struct {
	Ticker       string
	LookbackDays int
	Provider     string
	OutputDir    string
	Params       lagrangian.Parameters
}

func loadConfig() (runConfig, error) {
	cfg := runConfig{
		Ticker:       "AAPL",
		LookbackDays: 365,
		OutputDir:    ".",
		Params:       lagrangian.DefaultParameters(),
	}

	if v := os.Getenv("TICKER"); v != "" {
		cfg.Ticker = v
	}
	if len(os.Args) > 1 {
		cfg.Ticker = os.Args[1]
	}
	cfg.Ticker = strings.ToUpper(cfg.Ticker)

	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	cfg.Provider = os.Getenv("DATA_PROVIDER")

	var err error
	if cfg.LookbackDays, err = intEnv("LOOKBACK_DAYS", cfg.LookbackDays); err != nil {
		return cfg, err
	}
	if cfg.Params.Window, err = intEnv("WINDOW", cfg.Params.Window); err != nil {
		return cfg, err
	}
	if cfg.Params.Mass, err = floatEnv("MASS", cfg.Params.Mass); err != nil {
		return cfg, err
	}
	if cfg.Params.ReversionStrength, err = floatEnv("REVERSION_STRENGTH", cfg.Params.ReversionStrength); err != nil {
		return cfg, err
	}
	if cfg.Params.SignalThreshold, err = floatEnv("SIGNAL_THRESHOLD", cfg.Params.SignalThreshold); err != nil {
		return cfg, err
	}
	if cfg.Params.VelocityThreshold, err = floatEnv("VELOCITY_THRESHOLD", cfg.Params.VelocityThreshold); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

// pickProvider prefers Alpaca when keys are configured and falls back to
// the credential-free Yahoo chart API, unless DATA_PROVIDER forces one.
func pickProvider(cfg runConfig, logger *zap.Logger) (datasource.Provider, error) {
	apiKey := os.Getenv("ALPACA_API_KEY")
	apiSecret := os.Getenv("ALPACA_SECRET_KEY")

	switch cfg.Provider {
	case "alpaca":
		if apiKey == "" || apiSecret == "" {
			return nil, fmt.Errorf("DATA_PROVIDER=alpaca but ALPACA_API_KEY or ALPACA_SECRET_KEY not set")
		}
		return datasource.NewAlpacaProvider(apiKey, apiSecret, cfg.LookbackDays, logger), nil
	case "yahoo":
		return datasource.NewYahooProvider("1y", logger), nil
	case "":
		if apiKey != "" && apiSecret != "" {
			return datasource.NewAlpacaProvider(apiKey, apiSecret, cfg.LookbackDays, logger), nil
		}
		return datasource.NewYahooProvider("1y", logger), nil
	default:
		return nil, fmt.Errorf("unknown DATA_PROVIDER %q", cfg.Provider)
	}
}

func main() {
	fmt.Println(disclaimer)

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if err := cfg.Params.Validate(); err != nil {
		logger.Fatal("invalid parameters", zap.Error(err))
	}

	provider, err := pickProvider(cfg, logger)
	if err != nil {
		logger.Fatal("select data provider", zap.Error(err))
	}

	prices, err := provider.DailyCloses(cfg.Ticker)
	if err != nil {
		fmt.Printf("Could not retrieve data for %s.\n", cfg.Ticker)
		logger.Fatal("fetch daily closes",
			zap.String("symbol", cfg.Ticker),
			zap.String("provider", provider.Name()),
			zap.Error(err),
		)
	}

	derived, err := lagrangian.Transform(prices, cfg.Params)
	if err != nil {
		logger.Fatal("compute derived series", zap.Error(err))
	}
	events := lagrangian.ExtractEvents(derived, cfg.Params)

	fmt.Println()
	fmt.Print(report.Render(events))

	reportPath, err := report.WriteFile(cfg.OutputDir, cfg.Ticker, events)
	if err != nil {
		logger.Fatal("write report", zap.Error(err))
	}
	if len(events) > 0 {
		fmt.Printf("\nBuy signals written to: %s\n", reportPath)
	} else {
		fmt.Printf("\nNo buy signals to write to: %s\n", reportPath)
	}

	snapshotPath, err := report.WriteSnapshot(cfg.OutputDir, cfg.Ticker, derived, events)
	if err != nil {
		logger.Fatal("write snapshot", zap.Error(err))
	}
	chartPath, err := plot.WriteFile(cfg.OutputDir, cfg.Ticker, derived, events, cfg.Params)
	if err != nil {
		logger.Fatal("write chart", zap.Error(err))
	}

	logger.Info("run complete",
		zap.String("symbol", cfg.Ticker),
		zap.Int("bars", prices.Len()),
		zap.Int("events", len(events)),
		zap.String("report", reportPath),
		zap.String("snapshot", snapshotPath),
		zap.String("chart", chartPath),
	)

	printExplanation(cfg.Params)
}

// printExplanation restates the model constants and the buy condition with
// the configured values, mirroring the reference tool's closing output.
func printExplanation(p lagrangian.Parameters) {
	fmt.Println("\n--- Explanation of the Concepts ---")
	fmt.Println("\n1. Parameter Initialization:")
	fmt.Printf("   - 'mass': set to %v. This parameter scales the kinetic energy of a price move.\n", p.Mass)
	fmt.Printf("   - 'reversion strength': set to %v. This determines the strength of the pull towards the %d-day moving average.\n", p.ReversionStrength, p.Window)
	fmt.Println("\n2. Identifying Potential Buy Signals:")
	fmt.Printf("   - The buy condition is: signal > %v and velocity > %.4f.\n", p.SignalThreshold, p.VelocityThreshold)
	fmt.Println("   - The velocity threshold may need adjustment for the typical price fluctuations of the chosen asset.")
}

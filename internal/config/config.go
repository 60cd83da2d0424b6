package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/engine"
	"gw2-arbitrage/internal/logger"
)

// Config holds application settings. Defaults can be overridden by a .env
// file or environment variables, and those in turn by command-line flags.
type Config struct {
	IncludeTimeGated bool     // allow once-per-day recipes
	IncludeAscended  bool     // treat common ascended materials as free
	CraftCount       int      // max crafting iterations per item, 0 = unbounded
	Disciplines      []string // only consider recipes of these disciplines
	OutputCSV        string   // overview/shopping-list export path
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		IncludeTimeGated: false,
		IncludeAscended:  false,
		CraftCount:       0,
		Disciplines:      catalog.FilterDisciplines,
		OutputCSV:        "output.csv",
	}
}

// Load builds the config from defaults plus .env / environment overrides.
// A missing .env file is not an error.
func Load() *Config {
	cfg := Default()

	if err := godotenv.Load(".env"); err == nil {
		logger.Info("CFG", "Loaded .env")
	}

	if v := os.Getenv("GW2_INCLUDE_TIME_GATED"); v != "" {
		cfg.IncludeTimeGated = parseBool(v)
	}
	if v := os.Getenv("GW2_INCLUDE_ASCENDED"); v != "" {
		cfg.IncludeAscended = parseBool(v)
	}
	if v := os.Getenv("GW2_CRAFT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CraftCount = n
		}
	}
	if v := os.Getenv("GW2_DISCIPLINES"); v != "" {
		var disciplines []string
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				disciplines = append(disciplines, d)
			}
		}
		if len(disciplines) > 0 {
			cfg.Disciplines = disciplines
		}
	}
	if v := os.Getenv("GW2_OUTPUT"); v != "" {
		cfg.OutputCSV = v
	}

	return cfg
}

// CraftingOptions converts the app config into the options the engine
// carries down its recursion.
func (c *Config) CraftingOptions() engine.CraftingOptions {
	return engine.CraftingOptions{
		IncludeTimeGated: c.IncludeTimeGated,
		IncludeAscended:  c.IncludeAscended,
		Count:            c.CraftCount,
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

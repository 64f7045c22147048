package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	platformcmd "github.com/louisbranch/eventseed/internal/platform/cmd"
	"github.com/louisbranch/eventseed/internal/platform/logging"
	"github.com/louisbranch/eventseed/internal/seed"
	"github.com/louisbranch/eventseed/internal/seed/storage"
)

// Config holds seed command configuration.
type Config struct {
	SeedConfig seed.Config
	LogLevel   string
	LogFormat  string
	Verbose    bool
}

type envConfig struct {
	Driver          string `env:"EVENTSEED_DB_DRIVER" envDefault:"duckdb"`
	DBPath          string `env:"EVENTSEED_DB_PATH"`
	LogLevel        string `env:"EVENTSEED_LOG_LEVEL" envDefault:"warn"`
	LogFormat       string `env:"EVENTSEED_LOG_FORMAT" envDefault:"console"`
	MetricsTextfile string `env:"EVENTSEED_METRICS_TEXTFILE"`
}

// ParseConfig loads env defaults and then parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := platformcmd.ParseConfig(&envCfg); err != nil {
		return Config{}, err
	}

	seedCfg := seed.DefaultConfig()
	seedCfg.DBPath = envCfg.DBPath
	seedCfg.MetricsTextfile = envCfg.MetricsTextfile
	driver := envCfg.Driver
	cfg := Config{
		LogLevel:  envCfg.LogLevel,
		LogFormat: envCfg.LogFormat,
	}

	fs.StringVar(&driver, "driver", driver, "storage backend (duckdb, sqlite)")
	fs.StringVar(&seedCfg.DBPath, "db-path", seedCfg.DBPath, "database file (default: <project-root>/data/events.duckdb, or events.db for sqlite)")
	fs.Int64Var(&seedCfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output (debug logging)")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	seedCfg.Driver = storage.Driver(strings.ToLower(strings.TrimSpace(driver)))
	if !seedCfg.Driver.Valid() {
		return Config{}, fmt.Errorf("unknown driver %q (valid drivers: duckdb, sqlite)", driver)
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	root, err := repoRoot()
	if err != nil {
		return Config{}, err
	}
	seedCfg.RepoRoot = root
	cfg.SeedConfig = seedCfg
	return cfg, nil
}

// Run executes the seed command. Logs go to errOut; the summary line goes
// to out.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, errOut)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	seedCfg := cfg.SeedConfig
	seedCfg.Logger = logger

	return platformcmd.RunWithTelemetryAndOptions(ctx, platformcmd.ServiceSeed, platformcmd.RunOptions{Logger: logger}, func(ctx context.Context) error {
		_, err := seed.Run(ctx, seedCfg, out, errOut)
		return err
	})
}

// repoRoot returns the project root: the first ancestor holding go.mod,
// searched from this source file and then from the working directory.
func repoRoot() (string, error) {
	var starts []string
	if _, filename, _, ok := runtime.Caller(0); ok {
		starts = append(starts, filepath.Dir(filename))
	}
	if wd, err := os.Getwd(); err == nil {
		starts = append(starts, wd)
	}
	if len(starts) == 0 {
		return "", errors.New("failed to resolve runtime caller")
	}

	for _, start := range starts {
		if dir, ok := findGoMod(start); ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("go.mod not found from %s", strings.Join(starts, ", "))
}

func findGoMod(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	ContractURL   string
	ServeContract bool
	ContractID    string
	CatalogFile   string

	VoterSalt string
	OwnerSalt string

	RefreshInterval  time.Duration
	WatchTimeout     time.Duration
	FetchConcurrency int
	ContractTimeout  time.Duration

	EnvFile string
}

// HostsLedger reports whether the contract state lives in this process.
func (c Config) HostsLedger() bool {
	return c.ContractURL == ""
}

// flag name -> environment variable
var envFallback = map[string]string{
	"p":                 "PORT",
	"d":                 "DATABASE_URL",
	"t":                 "DATABASE_TYPE",
	"contract-url":      "CONTRACT_URL",
	"serve-contract":    "SERVE_CONTRACT",
	"contract-id":       "CONTRACT_ID",
	"catalog":           "CATALOG_FILE",
	"voter-salt":        "VOTER_SALT",
	"owner-salt":        "CONTRACT_OWNER_SALT",
	"refresh-interval":  "REFRESH_INTERVAL",
	"watch-timeout":     "WATCH_TIMEOUT",
	"fetch-concurrency": "FETCH_CONCURRENCY",
	"contract-timeout":  "CONTRACT_TIMEOUT",
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fset := flag.NewFlagSet("tally-board", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 3318, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&cfg.DatabaseType, "t", "sqlite", "Database type (sqlite or postgres)")

	// Contract
	fset.StringVar(&cfg.ContractURL, "contract-url", "", "Remote contract base URL (empty = in-process ledger)")
	fset.BoolVar(&cfg.ServeContract, "serve-contract", false, "Expose /contract/* routes")
	fset.StringVar(&cfg.ContractID, "contract-id", "tally.board", "Contract account ID")
	fset.StringVar(&cfg.CatalogFile, "catalog", "", "YAML candidate catalog")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cfg.VoterSalt, "voter-salt", "", "Voter hash salt (prefer env)")
	fset.StringVar(&cfg.OwnerSalt, "owner-salt", "", "Contract owner key salt (prefer env)")

	// Tally
	fset.DurationVar(&cfg.RefreshInterval, "refresh-interval", 0, "Background refresh interval (0 = off)")
	fset.DurationVar(&cfg.WatchTimeout, "watch-timeout", 25*time.Second, "Long-poll timeout")
	fset.IntVar(&cfg.FetchConcurrency, "fetch-concurrency", 0, "Max concurrent tally reads (0 = unbounded)")
	fset.DurationVar(&cfg.ContractTimeout, "contract-timeout", 10*time.Second, "Remote contract call timeout")

	fset.StringVar(&cfg.EnvFile, "env", ".env", "dotenv file")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
	}

	explicit := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// Fall back to environment variables
	for name, env := range envFallback {
		if explicit[name] {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := fset.Set(name, v); err != nil {
			return Config{}, fmt.Errorf("invalid %s env variable: %w", env, err)
		}
		explicit[name] = true
	}

	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if !explicit["serve-contract"] {
		cfg.ServeContract = cfg.HostsLedger()
	}
	if cfg.ServeContract && !cfg.HostsLedger() {
		return Config{}, errors.New("cannot serve the contract while using a remote CONTRACT_URL")
	}

	if cfg.HostsLedger() {
		if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
			cfg.DatabaseURL = "file:tally.db"
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}

		// Secrets - MUST be provided when hosting the ledger
		if cfg.VoterSalt == "" {
			return Config{}, errors.New("VOTER_SALT required")
		}
	}

	if cfg.ContractID == "" {
		return Config{}, errors.New("contract ID must not be empty")
	}
	if cfg.WatchTimeout <= 0 {
		return Config{}, errors.New("watch timeout must be positive")
	}
	if cfg.FetchConcurrency < 0 {
		return Config{}, errors.New("fetch concurrency must not be negative")
	}

	return cfg, nil
}

package main

import (
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/clinicdir"
)

// DefaultBaseURL is the archived directory site crawled when no base URL is given.
const DefaultBaseURL = "https://web.archive.org/web/20250708180027/https://www.myfootdr.com.au"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config     kong.ConfigFlag `short:"c" help:"YAML file with flag values"`
	BaseURL    string          `name:"base-url" default:"${default_base_url}" env:"CLINICDIR_BASE_URL" help:"Root URL of the clinic directory"`
	MinDelay   time.Duration   `default:"1s" env:"CLINICDIR_MIN_DELAY" help:"Minimum pause before each page request"`
	MaxDelay   time.Duration   `default:"2s" env:"CLINICDIR_MAX_DELAY" help:"Maximum pause before each page request"`
	MaxRetries int             `default:"3" env:"CLINICDIR_MAX_RETRIES" help:"Fetch attempts per page"`
	Timeout    time.Duration   `short:"t" default:"10s" env:"CLINICDIR_TIMEOUT" help:"Timeout per request"`
	Output     string          `short:"o" default:"clinics.csv" env:"CLINICDIR_OUTPUT" help:"CSV output path"`
	UserAgent  string          `default:"${default_user_agent}" env:"CLINICDIR_USER_AGENT" help:"User-Agent header sent with requests"`
	RPS        float64         `name:"rps" default:"0" env:"CLINICDIR_RPS" help:"Per-host request cap in requests per second (0 disables)"`
	DB         string          `name:"db" env:"CLINICDIR_DB" help:"Also store clinics in this SQLite database"`
	Debug      bool            `env:"CLINICDIR_DEBUG" help:"Enable debug logging"`
	LogJSON    bool            `name:"log-json" env:"CLINICDIR_LOG_JSON" help:"Log as JSON"`
}

// Validate checks flag combinations Kong cannot express.
func (c *CLI) Validate() error {
	switch {
	case c.BaseURL == "":
		return clinicdir.Errorf(clinicdir.EINVALID, "base URL required")
	case c.Output == "":
		return clinicdir.Errorf(clinicdir.EINVALID, "output path required")
	case c.MinDelay < 0 || c.MaxDelay < 0:
		return clinicdir.Errorf(clinicdir.EINVALID, "delays must not be negative")
	case c.MinDelay > c.MaxDelay:
		return clinicdir.Errorf(clinicdir.EINVALID, "min delay %s exceeds max delay %s", c.MinDelay, c.MaxDelay)
	case c.MaxRetries < 1:
		return clinicdir.Errorf(clinicdir.EINVALID, "max retries must be at least 1")
	case c.Timeout <= 0:
		return clinicdir.Errorf(clinicdir.EINVALID, "timeout must be positive")
	case c.RPS < 0:
		return clinicdir.Errorf(clinicdir.EINVALID, "rps must not be negative")
	}
	return nil
}

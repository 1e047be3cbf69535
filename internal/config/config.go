package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	EDGAR    EDGARConfig    `yaml:"edgar" envconfig:"EDGAR"`
	Sample   SampleConfig   `yaml:"sample" envconfig:"SAMPLE"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/pipeline.log"`
}

// EDGARConfig contains the SEC EDGAR client configuration.
// The SEC fair-access policy requires a descriptive User-Agent and caps
// clients at 10 requests per second.
type EDGARConfig struct {
	BaseURL        string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://data.sec.gov" validate:"required,url"`
	TickerMapURL   string        `yaml:"ticker_map_url" envconfig:"TICKER_MAP_URL" default:"https://www.sec.gov/files/company_tickers.json" validate:"required,url"`
	UserAgent      string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"AcademicResearch capstone-tariffs-profit-shifting@university.edu" validate:"required"`
	RequestsPerSec float64       `yaml:"requests_per_sec" envconfig:"REQUESTS_PER_SEC" default:"10" validate:"gt=0,lte=10"`
	Burst          int           `yaml:"burst" envconfig:"BURST" default:"1" validate:"gte=1"`
	Workers        int           `yaml:"workers" envconfig:"WORKERS" default:"4" validate:"gte=1,lte=16"`
	Timeout        time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
}

// SampleConfig defines the panel sample window and cleaning thresholds
type SampleConfig struct {
	FYMin int `yaml:"fy_min" envconfig:"FY_MIN" default:"2015" validate:"gte=1994"`
	FYMax int `yaml:"fy_max" envconfig:"FY_MAX" default:"2024" validate:"gtefield=FYMin"`

	// Annual income facts must cover a full fiscal year
	MinDurationDays int `yaml:"min_duration_days" envconfig:"MIN_DURATION_DAYS" default:"300" validate:"gt=0"`
	MaxDurationDays int `yaml:"max_duration_days" envconfig:"MAX_DURATION_DAYS" default:"400" validate:"gtefield=MinDurationDays"`

	// |Foreign + Domestic - Total| above this share of |Total| nulls FPS
	IdentityTolerance float64 `yaml:"identity_tolerance" envconfig:"IDENTITY_TOLERANCE" default:"0.05" validate:"gt=0,lt=1"`

	WinsorLower float64 `yaml:"winsor_lower" envconfig:"WINSOR_LOWER" default:"0.01" validate:"gte=0,lt=0.5"`
	WinsorUpper float64 `yaml:"winsor_upper" envconfig:"WINSOR_UPPER" default:"0.99" validate:"gt=0.5,lte=1"`
}

// AnalysisConfig parameterizes the regression stage
type AnalysisConfig struct {
	// First fiscal year treated as post-tariff (tariffs imposed mid-2018,
	// full effect from fiscal years starting 2019)
	PostYear int `yaml:"post_year" envconfig:"POST_YEAR" default:"2019"`
	// Event study reference year (coefficient fixed at zero)
	ReferenceYear int `yaml:"reference_year" envconfig:"REFERENCE_YEAR" default:"2017"`
	// Placebo treatment year for the pre-trend check
	PlaceboYear int `yaml:"placebo_year" envconfig:"PLACEBO_YEAR" default:"2017"`

	BootstrapReps int   `yaml:"bootstrap_reps" envconfig:"BOOTSTRAP_REPS" default:"9999" validate:"gte=99"`
	BootstrapSeed int64 `yaml:"bootstrap_seed" envconfig:"BOOTSTRAP_SEED" default:"42"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TPS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against the struct validation tags
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if c.Sample.FYMax < c.Sample.FYMin {
		return fmt.Errorf("fy_max %d before fy_min %d", c.Sample.FYMax, c.Sample.FYMin)
	}
	if c.Analysis.ReferenceYear < c.Sample.FYMin || c.Analysis.ReferenceYear > c.Sample.FYMax {
		return fmt.Errorf("reference year %d outside sample window %d-%d",
			c.Analysis.ReferenceYear, c.Sample.FYMin, c.Sample.FYMax)
	}
	return nil
}

// Years returns the inclusive fiscal-year sample window
func (s SampleConfig) Years() []int {
	years := make([]int, 0, s.FYMax-s.FYMin+1)
	for y := s.FYMin; y <= s.FYMax; y++ {
		years = append(years, y)
	}
	return years
}

// InWindow reports whether a fiscal year falls inside the sample window
func (s SampleConfig) InWindow(year int) bool {
	return year >= s.FYMin && year <= s.FYMax
}

func getConfigFilePath() string {
	if p := os.Getenv("TPS_CONFIG_FILE"); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence,
// file fills anything the environment left at its zero value)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.EDGAR.BaseURL == "" {
		envConfig.EDGAR.BaseURL = fileConfig.EDGAR.BaseURL
	}
	if envConfig.EDGAR.TickerMapURL == "" {
		envConfig.EDGAR.TickerMapURL = fileConfig.EDGAR.TickerMapURL
	}
	if envConfig.EDGAR.UserAgent == "" {
		envConfig.EDGAR.UserAgent = fileConfig.EDGAR.UserAgent
	}
	if envConfig.EDGAR.RequestsPerSec == 0 {
		envConfig.EDGAR.RequestsPerSec = fileConfig.EDGAR.RequestsPerSec
	}
	if envConfig.EDGAR.Burst == 0 {
		envConfig.EDGAR.Burst = fileConfig.EDGAR.Burst
	}
	if envConfig.EDGAR.Workers == 0 {
		envConfig.EDGAR.Workers = fileConfig.EDGAR.Workers
	}
	if envConfig.EDGAR.Timeout == 0 {
		envConfig.EDGAR.Timeout = fileConfig.EDGAR.Timeout
	}
	if envConfig.Sample.FYMin == 0 {
		envConfig.Sample.FYMin = fileConfig.Sample.FYMin
	}
	if envConfig.Sample.FYMax == 0 {
		envConfig.Sample.FYMax = fileConfig.Sample.FYMax
	}
	if envConfig.Sample.MinDurationDays == 0 {
		envConfig.Sample.MinDurationDays = fileConfig.Sample.MinDurationDays
	}
	if envConfig.Sample.MaxDurationDays == 0 {
		envConfig.Sample.MaxDurationDays = fileConfig.Sample.MaxDurationDays
	}
	if envConfig.Sample.IdentityTolerance == 0 {
		envConfig.Sample.IdentityTolerance = fileConfig.Sample.IdentityTolerance
	}
	if envConfig.Sample.WinsorLower == 0 {
		envConfig.Sample.WinsorLower = fileConfig.Sample.WinsorLower
	}
	if envConfig.Sample.WinsorUpper == 0 {
		envConfig.Sample.WinsorUpper = fileConfig.Sample.WinsorUpper
	}
	if envConfig.Analysis.PostYear == 0 {
		envConfig.Analysis.PostYear = fileConfig.Analysis.PostYear
	}
	if envConfig.Analysis.ReferenceYear == 0 {
		envConfig.Analysis.ReferenceYear = fileConfig.Analysis.ReferenceYear
	}
	if envConfig.Analysis.PlaceboYear == 0 {
		envConfig.Analysis.PlaceboYear = fileConfig.Analysis.PlaceboYear
	}
	if envConfig.Analysis.BootstrapReps == 0 {
		envConfig.Analysis.BootstrapReps = fileConfig.Analysis.BootstrapReps
	}
	if envConfig.Analysis.BootstrapSeed == 0 {
		envConfig.Analysis.BootstrapSeed = fileConfig.Analysis.BootstrapSeed
	}

	return envConfig
}

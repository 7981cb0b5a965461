package contract

import (
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"

	"github.com/huangsam/tpmplot/schema"
)

// Default values for configuration.
const (
	DefaultZeroStreak = 2
	DefaultTimeCap    = -1.0 // negative means no cap
	DefaultOutDir     = "graphs"
	DefaultWidthIn    = 12.0
	DefaultHeightIn   = 6.0
	DefaultPrecision  = 1
	DefaultChartName  = "tpm_comparison"
	MaxTimeCap        = 10080.0 // one week of minutes
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a tpmplot invocation.
// This struct is the "final, validated" config.
type Config struct {
	// Charts are the charts to process. Every field of each spec is populated.
	Charts []schema.ChartSpec

	Keys       []string
	ZeroStreak int
	TimeCap    float64
	LabelBy    schema.LabelStrategy

	OutDir   string
	Format   schema.ImageFormat
	WidthIn  float64
	HeightIn float64
	Show     bool

	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in status lines
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Files []string

	// --- Pipeline flags ---
	Keys       []string `mapstructure:"keys"`
	ZeroStreak int      `mapstructure:"zero-streak"`
	TimeCap    float64  `mapstructure:"time-cap"`
	LabelBy    string   `mapstructure:"label-by"`
	Labels     []string `mapstructure:"label"`

	// --- Chart selection ---
	Name  string `mapstructure:"name"`
	Title string `mapstructure:"title"`
	Chart string `mapstructure:"chart"`
	All   bool   `mapstructure:"all"`

	// --- Rendering flags ---
	OutDir   string  `mapstructure:"out-dir"`
	Format   string  `mapstructure:"format"`
	WidthIn  float64 `mapstructure:"width-in"`
	HeightIn float64 `mapstructure:"height-in"`
	Show     bool    `mapstructure:"show"`

	// --- Output flags ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Workers    int    `mapstructure:"workers"`
	Width      int    `mapstructure:"width"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`

	// --- History store ---
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Named charts from config file ---
	Charts []schema.ChartSpec `mapstructure:"charts"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Keys = slices.Clone(c.Keys)
	if c.Charts != nil {
		clone.Charts = make([]schema.ChartSpec, len(c.Charts))
		for i, chart := range c.Charts {
			clone.Charts[i] = cloneChart(chart)
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validatePipelineInputs(cfg, input); err != nil {
		return err
	}
	if err := validateRenderInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return resolveCharts(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateTruncation checks a zero-streak threshold and time cap pair.
func ValidateTruncation(zeroStreak int, timeCap float64) error {
	if zeroStreak < 1 {
		return fmt.Errorf("zero-streak must be at least 1 (received %d)", zeroStreak)
	}
	if math.IsNaN(timeCap) || math.IsInf(timeCap, 0) {
		return fmt.Errorf("time-cap must be a finite number of minutes (received %v)", timeCap)
	}
	if timeCap > MaxTimeCap {
		return fmt.Errorf("time-cap must be at most %v minutes (received %v)", MaxTimeCap, timeCap)
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// validatePipelineInputs validates the truncation thresholds, keys and label strategy.
func validatePipelineInputs(cfg *Config, input *ConfigRawInput) error {
	if err := ValidateTruncation(input.ZeroStreak, input.TimeCap); err != nil {
		return err
	}
	cfg.ZeroStreak = input.ZeroStreak
	cfg.TimeCap = input.TimeCap

	cfg.LabelBy = schema.LabelStrategy(strings.ToLower(input.LabelBy))
	if cfg.LabelBy == "" {
		cfg.LabelBy = schema.LabelByEngine
	}
	if _, ok := schema.ValidLabelStrategies[cfg.LabelBy]; !ok {
		return fmt.Errorf("invalid label strategy '%s'. must be engine, vu, file", input.LabelBy)
	}

	cfg.Keys = ParseKeys(input.Keys)
	return nil
}

// validateRenderInputs validates the image format, size and output directory.
func validateRenderInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Format = schema.ImageFormat(strings.ToLower(input.Format))
	if cfg.Format == "" {
		cfg.Format = schema.PNGImage
	}
	if _, ok := schema.ValidImageFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid image format '%s'. must be png, svg, pdf", input.Format)
	}

	if input.WidthIn <= 0 || input.HeightIn <= 0 {
		return fmt.Errorf("chart size must be positive (received %.1fx%.1f inches)", input.WidthIn, input.HeightIn)
	}
	cfg.WidthIn = input.WidthIn
	cfg.HeightIn = input.HeightIn

	cfg.OutDir = strings.TrimSpace(input.OutDir)
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	cfg.Show = input.Show
	return nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// resolveCharts turns positional files or named config charts into cfg.Charts.
// No files and no chart selection leaves cfg.Charts empty.
func resolveCharts(cfg *Config, input *ConfigRawInput) error {
	var selected []schema.ChartSpec
	switch {
	case len(input.Files) > 0:
		if input.Chart != "" || input.All {
			return fmt.Errorf("file arguments cannot be combined with --chart or --all")
		}
		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = DefaultChartName
		}
		selected = []schema.ChartSpec{{
			Name:   name,
			Title:  input.Title,
			Files:  slices.Clone(input.Files),
			Labels: slices.Clone(input.Labels),
		}}
	case input.Chart != "":
		idx := slices.IndexFunc(input.Charts, func(c schema.ChartSpec) bool { return c.Name == input.Chart })
		if idx < 0 {
			return fmt.Errorf("chart %q not found in config file", input.Chart)
		}
		selected = []schema.ChartSpec{cloneChart(input.Charts[idx])}
	case input.All:
		if len(input.Charts) == 0 {
			return fmt.Errorf("--all requires at least one chart under 'charts' in the config file")
		}
		for _, c := range input.Charts {
			selected = append(selected, cloneChart(c))
		}
	}

	seen := make(map[string]struct{}, len(selected))
	for i := range selected {
		if err := fillChartDefaults(cfg, &selected[i]); err != nil {
			return err
		}
		if _, dup := seen[selected[i].Name]; dup {
			return fmt.Errorf("duplicate chart name %q", selected[i].Name)
		}
		seen[selected[i].Name] = struct{}{}
	}
	cfg.Charts = selected
	return nil
}

// RevalidateChart validates a single ad-hoc chart against an already validated config
// and makes it the only chart of cfg. Unset fields are filled from cfg.
func RevalidateChart(cfg *Config, chart schema.ChartSpec) error {
	c := cloneChart(chart)
	if strings.TrimSpace(c.Name) == "" {
		c.Name = DefaultChartName
	}
	if err := fillChartDefaults(cfg, &c); err != nil {
		return err
	}
	cfg.Charts = []schema.ChartSpec{c}
	return nil
}

// fillChartDefaults validates a chart and populates unset fields from the global config.
func fillChartDefaults(cfg *Config, c *schema.ChartSpec) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("chart name cannot be empty")
	}
	if strings.ContainsAny(c.Name, `/\`) {
		return fmt.Errorf("chart name %q cannot contain path separators", c.Name)
	}
	if len(c.Files) == 0 {
		return fmt.Errorf("chart %q has no input files", c.Name)
	}
	if len(c.Labels) > len(c.Files) {
		return fmt.Errorf("chart %q has %d labels for %d files", c.Name, len(c.Labels), len(c.Files))
	}

	if c.LabelBy == "" {
		c.LabelBy = string(cfg.LabelBy)
	}
	c.LabelBy = strings.ToLower(c.LabelBy)
	if _, ok := schema.ValidLabelStrategies[schema.LabelStrategy(c.LabelBy)]; !ok {
		return fmt.Errorf("chart %q: invalid label strategy '%s'", c.Name, c.LabelBy)
	}

	if c.ZeroStreak == nil {
		c.ZeroStreak = new(int)
		*c.ZeroStreak = cfg.ZeroStreak
	}
	if c.TimeCap == nil {
		c.TimeCap = new(float64)
		*c.TimeCap = cfg.TimeCap
	}
	if err := ValidateTruncation(*c.ZeroStreak, *c.TimeCap); err != nil {
		return fmt.Errorf("chart %q: %w", c.Name, err)
	}

	if len(c.Keys) == 0 {
		c.Keys = slices.Clone(cfg.Keys)
	} else {
		c.Keys = ParseKeys(c.Keys)
	}
	if c.OutputDir == "" {
		c.OutputDir = cfg.OutDir
	}
	return nil
}

// ParseKeys trims, splits on commas and de-duplicates series keys, keeping order.
// An empty result falls back to schema.DefaultSeriesKeys.
func ParseKeys(raw []string) []string {
	var keys []string
	for _, entry := range raw {
		for part := range strings.SplitSeq(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" && !slices.Contains(keys, part) {
				keys = append(keys, part)
			}
		}
	}
	if len(keys) == 0 {
		return slices.Clone(schema.DefaultSeriesKeys)
	}
	return keys
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

func cloneChart(c schema.ChartSpec) schema.ChartSpec {
	clone := c
	clone.Files = slices.Clone(c.Files)
	clone.Labels = slices.Clone(c.Labels)
	clone.Keys = slices.Clone(c.Keys)
	if c.ZeroStreak != nil {
		v := *c.ZeroStreak
		clone.ZeroStreak = &v
	}
	if c.TimeCap != nil {
		v := *c.TimeCap
		clone.TimeCap = &v
	}
	return clone
}

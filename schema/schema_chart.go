package schema

// ChartSpec describes one comparison chart as listed under "charts" in the config file.
type ChartSpec struct {
	Name       string   `mapstructure:"name" json:"name"`                   // Output file name without extension
	Title      string   `mapstructure:"title" json:"title,omitempty"`       // Chart title override
	Files      []string `mapstructure:"files" json:"files"`                 // Input result files
	Labels     []string `mapstructure:"labels" json:"labels,omitempty"`     // Per-series legend labels, index-aligned with Files
	LabelBy    string   `mapstructure:"label-by" json:"label_by,omitempty"` // engine, vu or file
	ZeroStreak *int     `mapstructure:"zero-streak" json:"zero_streak"`     // Overrides the global threshold
	TimeCap    *float64 `mapstructure:"time-cap" json:"time_cap"`           // Overrides the global cap; negative disables
	Keys       []string `mapstructure:"keys" json:"keys,omitempty"`         // Overrides the recognized series keys
	OutputDir  string   `mapstructure:"out-dir" json:"out_dir,omitempty"`   // Overrides the output directory
}

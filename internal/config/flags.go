package config

// Overrides holds command-line values applied on top of file settings.
// Zero values leave the config untouched, so unset flags pass through.
// MinRadius uses negative as unset because zero is a meaningful radius.
type Overrides struct {
	Resolution int
	MinRadius  float64
	Format     string
	OutDir     string
	BaseName   string
	Workers    int
	LogLevel   string
	LogFile    string
}

// Apply writes the non-zero overrides into cfg. Priority is therefore
// defaults < file < flags.
func (o Overrides) Apply(cfg *Config) {
	if o.Resolution > 0 {
		cfg.Mesh.Resolution = o.Resolution
	}
	if o.MinRadius >= 0 {
		cfg.Collider.MinRadius = float32(o.MinRadius)
	}
	if o.Format != "" {
		cfg.Export.Format = o.Format
	}
	if o.OutDir != "" {
		cfg.Export.OutDir = o.OutDir
	}
	if o.BaseName != "" {
		cfg.Export.BaseName = o.BaseName
	}
	if o.Workers > 0 {
		cfg.Batch.Workers = o.Workers
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}

package domain

// Config stores local defaults applied to every run. Empty fields fall back
// to built-in defaults.
type Config struct {
	Unit      string `json:"unit,omitempty"`
	Precision *int   `json:"precision,omitempty"`
	Format    string `json:"format,omitempty"`
	Source    string `json:"source,omitempty"`
}

// IsZero reports whether no default is set.
func (c Config) IsZero() bool {
	return c.Unit == "" && c.Precision == nil && c.Format == "" && c.Source == ""
}

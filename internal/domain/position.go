package domain

// Position identifies a point on earth in decimal degrees.
type Position struct {
	Lat float64 `json:"latitude" yaml:"latitude"`
	Lon float64 `json:"longitude" yaml:"longitude"`
}

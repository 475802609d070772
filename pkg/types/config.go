package types

import "errors"

// Config holds the parameters for Engine.Open.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config validation errors.
var ErrDataDirEmpty = errors.New("data directory must not be empty")

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

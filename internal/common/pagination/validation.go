package pagination

import "fmt"

// Validate validates pagination parameters against the configuration.
// Returns an error if shown is less than 1 or greater than config.MaxShown.
func (p Params) Validate(config Config) error {
	if p.Shown < 1 || p.Shown > config.MaxShown {
		return fmt.Errorf("shown must be between 1 and %d", config.MaxShown)
	}
	return nil
}

// WithDefaults applies default values from config to Params.
//
// Rules:
//   - If shown <= 0, set to config.DefaultShown
//   - If shown > config.MaxShown, cap to config.MaxShown
func (p Params) WithDefaults(config Config) Params {
	if p.Shown <= 0 {
		p.Shown = config.DefaultShown
	}
	if p.Shown > config.MaxShown {
		p.Shown = config.MaxShown
	}
	return p
}

package notify

import (
	"encoding/json"
	"os"
)

// Anchor names the screen corner notifications stack from.
type Anchor string

const (
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorTopLeft     Anchor = "top-left"
)

// Config holds user notification preferences. It is persisted wholesale as a
// flat JSON document; a missing file or unknown keys are not errors.
type Config struct {
	StockAlerts    bool   `json:"stock_alerts"`
	SalesAlerts    bool   `json:"sales_alerts"`
	LoginAlerts    bool   `json:"login_alerts"`
	SystemAlerts   bool   `json:"system_alerts"`
	SoundEnabled   bool   `json:"sound_enabled"`
	AutoClearDays  int    `json:"auto_clear_days"`
	Position       Anchor `json:"position"`
	AnimationStyle string `json:"animation_style"`
}

func DefaultConfig() Config {
	return Config{
		StockAlerts:    true,
		SalesAlerts:    true,
		LoginAlerts:    true,
		SystemAlerts:   true,
		SoundEnabled:   false,
		AutoClearDays:  30,
		Position:       AnchorTopRight,
		AnimationStyle: "slide",
	}
}

// LoadConfig reads preferences from path, merging saved keys over the
// defaults. Any failure leaves the defaults in place; loading is best-effort.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	// Unmarshal over the defaults so absent keys keep their default value.
	_ = json.Unmarshal(data, &cfg)
	if cfg.Position != AnchorTopRight && cfg.Position != AnchorBottomRight && cfg.Position != AnchorTopLeft {
		cfg.Position = AnchorTopRight
	}
	return cfg
}

// Save writes the whole document to path. Best-effort: the caller decides
// whether a failure is worth more than a log line.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

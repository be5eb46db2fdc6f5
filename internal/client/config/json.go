package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mymemory/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values so a partial file only overrides what
// it names.
type JsonConfig struct {
	DatabasePath        *string `json:"database_path"`
	LogLevel            *string `json:"log_level"`
	FallbackImage       *string `json:"fallback_image"`
	MaxProfileDimension *int    `json:"max_profile_dimension"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.FallbackImage != nil {
		cfg.FallbackImage = *jc.FallbackImage
	}
	if jc.MaxProfileDimension != nil {
		cfg.MaxProfileDimension = *jc.MaxProfileDimension
	}
}

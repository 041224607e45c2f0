package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "family.rmtree")

	// Tree construction defaults
	v.SetDefault("tree.ancestry_depth", 4)    // great-great-grandparents
	v.SetDefault("tree.descendancy_depth", 3) // great-grandchildren

	// Log defaults
	v.SetDefault("log.json", false)
}

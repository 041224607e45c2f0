package config

// Config represents the core Timeline Traveler configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Tree     TreeConfig     `mapstructure:"tree"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig configures the RootsMagic SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // Path to the .rmgc/.rmtree file
}

// TreeConfig configures default graph construction depths.
// Depth 0 stops recursion at the root but still loads direct spouses.
type TreeConfig struct {
	AncestryDepth    int `mapstructure:"ancestry_depth"`    // Generations loaded upward from the root (default: 4)
	DescendancyDepth int `mapstructure:"descendancy_depth"` // Generations loaded downward from the root (default: 3)
}

// LogConfig configures logger output
type LogConfig struct {
	JSON bool `mapstructure:"json"` // Structured JSON output instead of console
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

package domain

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mirror   MirrorConfig   `mapstructure:"mirror"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MirrorConfig contains mirror pipeline configuration
type MirrorConfig struct {
	// RepoURL is the repository whose file tree is enumerated
	RepoURL string `mapstructure:"repo_url"`

	// BaseURL is the HTTP origin files are fetched from
	BaseURL string `mapstructure:"base_url"`

	// DestDir is the destination root. Empty means a fresh temp directory
	// per run.
	DestDir string `mapstructure:"dest_dir"`

	// Branch is the branch checked out during enumeration
	Branch string `mapstructure:"branch"`

	// ConcurrentLimit caps the number of in-flight downloads
	ConcurrentLimit int `mapstructure:"concurrent_limit"`

	// ChunkSize is the read size used when digesting files
	ChunkSize int `mapstructure:"chunk_size"`
}

// DatabaseConfig contains persistence configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Mirror: MirrorConfig{
			Branch:          "master",
			ConcurrentLimit: 3,
			ChunkSize:       4096,
		},
		Database: DatabaseConfig{
			Path: "$HOME/.repomirror/runs.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}

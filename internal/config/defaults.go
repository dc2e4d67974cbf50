package config

const (
	defaultConfigPath = "~/.config/filesort/config.toml"
	defaultSourceDir  = "."
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// DefaultLabels are the category labels organized when neither the config
// file nor the command line names any.
var DefaultLabels = []string{"image", "video", "application", "image/webp"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Organize: Organize{
			SourceDir: defaultSourceDir,
			Labels:    append([]string(nil), DefaultLabels...),
		},
		MimeTypes: map[string]string{},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

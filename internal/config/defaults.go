package config

const (
	defaultWorkspaceDir = "~/.local/share/gifforge/workspace"
	defaultOutputDir    = "~/gifs"
	defaultLogDir       = "~/.local/share/gifforge/logs"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	// DefaultFilename is the artifact name used when no explicit output is given.
	DefaultFilename = "anh_dong.gif"

	// MaxDimension bounds both axes of every normalized frame.
	MaxDimension = 1920

	// MinDelayMS and MaxDelayMS bound the per-frame display interval.
	MinDelayMS = 20
	MaxDelayMS = 5000

	defaultDelayMS        = 200
	defaultEncoderWorkers = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
		},
		Output: Output{
			Filename: DefaultFilename,
			DelayMS:  defaultDelayMS,
		},
		Normalize: Normalize{
			MaxDimension: MaxDimension,
		},
		Encoder: Encoder{
			Workers: defaultEncoderWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package coursesite

import "github.com/goliatone/go-coursesite/internal/runtimeconfig"

var (
	ErrLessonsDirRequired      = runtimeconfig.ErrLessonsDirRequired
	ErrOutputDirRequired       = runtimeconfig.ErrOutputDirRequired
	ErrOutputDirUnsafe         = runtimeconfig.ErrOutputDirUnsafe
	ErrOutputDirOverlapsInput  = runtimeconfig.ErrOutputDirOverlapsInput
	ErrMarkdownExtension       = runtimeconfig.ErrMarkdownExtension
	ErrCodeIndentInvalid       = runtimeconfig.ErrCodeIndentInvalid
	ErrCheckerTimeoutInvalid   = runtimeconfig.ErrCheckerTimeoutInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	CheckerConfig  = runtimeconfig.CheckerConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}

package utils

const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "unmix failed"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".unmix"
	// GlobalConfigFileName is the configuration file name inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// ConfigFileName is the local configuration file looked up in the working directory.
	ConfigFileName = ".unmix.yaml"
	// DefaultOutputDirectory is the restore destination used when none is configured.
	DefaultOutputDirectory = "output"
	// DefaultTokenizerModel is the model used for token counting when none is configured.
	DefaultTokenizerModel = "gpt-4o"
)

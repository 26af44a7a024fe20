// Package utils holds the ambient plumbing shared by the CLI: Viper-backed
// configuration loading, zap logger construction, command context values,
// and an output writer that flushes after every report fragment.
package utils

// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing. Every package that needs
// settings declares its own Config struct with env tags and the binary loads
// them at startup:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Each configuration type is parsed once per process and served from an
// in-memory cache afterwards. ResetCache clears the cache between tests.
//
// Errors are sentinels comparable with errors.Is: ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config

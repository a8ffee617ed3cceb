// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables
const (
	GOES_GLM_ENV_FILE         = "GOES_GLM_ENV_FILE"
	GOES_GLM_LOG_LEVEL        = "GOES_GLM_LOG_LEVEL"
	GOES_GLM_LOG_FORMAT       = "GOES_GLM_LOG_FORMAT"
	GOES_GLM_METRICS_TEXTFILE = "GOES_GLM_METRICS_TEXTFILE"
)

const defaultEnvFile = ".env"

// LoadEnvFile loads variables from the file named by GOES_GLM_ENV_FILE, or
// from ./.env. Variables already set in the environment win. A missing
// default file is not an error; a missing explicit file is.
func LoadEnvFile(ctx LogContext) error {
	path, explicit := os.LookupEnv(GOES_GLM_ENV_FILE)
	if !explicit {
		path = defaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		LogDebug(ctx, "Loaded environment from "+path)
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return LogSimpleErr(ctx, "Failed to load environment file "+path, err)
}

// GetLogLevel returns the level named by GOES_GLM_LOG_LEVEL, defaulting to info
func GetLogLevel() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(GOES_GLM_LOG_LEVEL))) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogFormat returns "console" or "json" (the default)
func GetLogFormat() string {
	if strings.EqualFold(strings.TrimSpace(os.Getenv(GOES_GLM_LOG_FORMAT)), "console") {
		return "console"
	}
	return "json"
}

// GetMetricsTextfile returns the path metrics should be written to, or an
// empty string when metrics are disabled
func GetMetricsTextfile() string {
	path, ok := os.LookupEnv(GOES_GLM_METRICS_TEXTFILE)
	if !ok {
		LogDebug(&BasicLogContext{}, "No metrics textfile in environment. Metrics will not be written.")
	}
	return strings.TrimSpace(path)
}

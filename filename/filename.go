// Copyright 2018, RadiantBlue Technologies, Inc.
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

package filename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/venicegeo/goes-glm-stac/model"
)

// GLM L2 files are named like OR_GLM-L2-LCFA_G16_s20203662359400_e20210010000004_c20210010000030.nc
// See the GOES-R PUG Vol.1 section 4.3 for the convention.

var glmNamePattern = regexp.MustCompile(`^([A-Z]{2})_(GLM-L2-LCFA)_(G[0-9]{2}|GOES-Test)_s([0-9]{14})_e([0-9]{14})(?:_c([0-9]{14}))?(\.nc|\.parquet)?$`)

var creationSuffixPattern = regexp.MustCompile(`_c[0-9]+$`)

// OperationalEnvironment is the system environment of operational real-time data
const OperationalEnvironment = "OR"

// Format is the kind of file the name refers to
type Format string

// Known formats
const (
	FormatNone    Format = ""
	FormatNetCDF  Format = ".nc"
	FormatParquet Format = ".parquet"
)

// ParseError is returned for names that do not follow the GLM convention
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid GLM file name `%s`: %s", e.Name, e.Reason)
}

// FileName is a parsed GLM file name
type FileName struct {
	ID                string // base name without suffix
	SystemEnvironment string
	Product           string
	Platform          model.Platform
	Start             time.Time
	End               time.Time
	Created           time.Time
	HasCreated        bool
	Format            Format
}

// IsOperational reports whether the file is operational real-time data
func (fn FileName) IsOperational() bool {
	return fn.SystemEnvironment == OperationalEnvironment
}

// IDWithoutCreation returns the ID with any trailing creation timestamp removed
func (fn FileName) IDWithoutCreation() string {
	return StripCreation(fn.ID)
}

// StripCreation removes a trailing `_c<digits>` from an ID
func StripCreation(id string) string {
	return creationSuffixPattern.ReplaceAllString(id, "")
}

// IsGLMName returns whether a name follows the GLM L2 LCFA convention
func IsGLMName(name string) bool {
	return glmNamePattern.MatchString(filepath.Base(name))
}

// Parse parses a GLM file name. Directories in front of the name are ignored.
func Parse(name string) (*FileName, error) {
	base := filepath.Base(name)
	m := glmNamePattern.FindStringSubmatch(base)
	if m == nil {
		return nil, &ParseError{Name: base, Reason: "does not match <env>_GLM-L2-LCFA_<platform>_s<start>_e<end>[_c<created>]"}
	}

	platform, err := model.LookupPlatform(m[3])
	if err != nil {
		return nil, &ParseError{Name: base, Reason: err.Error()}
	}

	result := FileName{
		ID:                strings.TrimSuffix(base, m[7]),
		SystemEnvironment: m[1],
		Product:           m[2],
		Platform:          platform,
		Format:            Format(m[7]),
	}

	if result.Start, err = parseTimestamp(m[4]); err != nil {
		return nil, &ParseError{Name: base, Reason: "start: " + err.Error()}
	}
	if result.End, err = parseTimestamp(m[5]); err != nil {
		return nil, &ParseError{Name: base, Reason: "end: " + err.Error()}
	}
	if m[6] != "" {
		if result.Created, err = parseTimestamp(m[6]); err != nil {
			return nil, &ParseError{Name: base, Reason: "created: " + err.Error()}
		}
		result.HasCreated = true
	}

	if result.End.Before(result.Start) {
		return nil, &ParseError{Name: base, Reason: "end is before start"}
	}

	return &result, nil
}

// parseTimestamp decodes YYYYJJJHHMMSSt: year, day of year, hour, minute,
// second and tenths of a second, UTC
func parseTimestamp(raw string) (time.Time, error) {
	fields := []struct {
		name     string
		from, to int
		min, max int
	}{
		{"year", 0, 4, 1, 9999},
		{"day of year", 4, 7, 1, 366},
		{"hour", 7, 9, 0, 23},
		{"minute", 9, 11, 0, 59},
		{"second", 11, 13, 0, 60},
		{"tenth", 13, 14, 0, 9},
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(raw[f.from:f.to])
		if err != nil {
			return time.Time{}, err
		}
		if v < f.min || v > f.max {
			return time.Time{}, fmt.Errorf("%s %d out of range", f.name, v)
		}
		values[i] = v
	}

	year, doy := values[0], values[1]
	if doy == 366 && !isLeapYear(year) {
		return time.Time{}, fmt.Errorf("day of year 366 in non-leap year %d", year)
	}

	t := time.Date(year, time.January, 1, values[2], values[3], values[4], values[5]*int(100*time.Millisecond), time.UTC)
	return t.AddDate(0, 0, doy-1), nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

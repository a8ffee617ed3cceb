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

package geoparquet

import (
	"time"

	"github.com/venicegeo/goes-glm-stac/model"
)

// Table describes one of the three GeoParquet files derived from a GLM file
type Table struct {
	Kind    string // variable prefix: event, group or flash
	Key     string // asset key
	Title   string
	File    string
	Columns []string // value columns in output order, lat/lon excluded
}

// Tables lists the tables in the order their assets are created
var Tables = []Table{
	{
		Kind:    "event",
		Key:     model.ParquetKeyEvents,
		Title:   model.ParquetTitleEvents,
		File:    "events.parquet",
		Columns: []string{"id", "time_offset", "energy", "parent_group_id"},
	},
	{
		Kind:  "flash",
		Key:   model.ParquetKeyFlashes,
		Title: model.ParquetTitleFlashes,
		File:  "flashes.parquet",
		Columns: []string{
			"id",
			"time_offset_of_first_event",
			"time_offset_of_last_event",
			"frame_time_offset_of_first_event",
			"frame_time_offset_of_last_event",
			"area",
			"energy",
			"quality_flag",
		},
	},
	{
		Kind:    "group",
		Key:     model.ParquetKeyGroups,
		Title:   model.ParquetTitleGroups,
		File:    "groups.parquet",
		Columns: []string{"id", "time_offset", "frame_time_offset", "area", "energy", "quality_flag", "parent_flash_id"},
	},
}

// EventRow is a row of events.parquet
type EventRow struct {
	Geometry      []byte    `parquet:"geometry,optional"`
	ID            int64     `parquet:"id"`
	Time          time.Time `parquet:"time,optional,timestamp(microsecond)"`
	TimeOffset    float64   `parquet:"time_offset"`
	Energy        float64   `parquet:"energy"`
	ParentGroupID int64     `parquet:"parent_group_id"`
}

// GroupRow is a row of groups.parquet
type GroupRow struct {
	Geometry        []byte    `parquet:"geometry,optional"`
	ID              int64     `parquet:"id"`
	Time            time.Time `parquet:"time,optional,timestamp(microsecond)"`
	TimeOffset      float64   `parquet:"time_offset"`
	FrameTime       time.Time `parquet:"frame_time,optional,timestamp(microsecond)"`
	FrameTimeOffset float64   `parquet:"frame_time_offset"`
	Area            float64   `parquet:"area"`
	Energy          float64   `parquet:"energy"`
	QualityFlag     int64     `parquet:"quality_flag"`
	ParentFlashID   int64     `parquet:"parent_flash_id"`
}

// FlashRow is a row of flashes.parquet
type FlashRow struct {
	Geometry                    []byte    `parquet:"geometry,optional"`
	ID                          int64     `parquet:"id"`
	TimeOfFirstEvent            time.Time `parquet:"time_of_first_event,optional,timestamp(microsecond)"`
	TimeOffsetOfFirstEvent      float64   `parquet:"time_offset_of_first_event"`
	TimeOfLastEvent             time.Time `parquet:"time_of_last_event,optional,timestamp(microsecond)"`
	TimeOffsetOfLastEvent       float64   `parquet:"time_offset_of_last_event"`
	FrameTimeOfFirstEvent       time.Time `parquet:"frame_time_of_first_event,optional,timestamp(microsecond)"`
	FrameTimeOffsetOfFirstEvent float64   `parquet:"frame_time_offset_of_first_event"`
	FrameTimeOfLastEvent        time.Time `parquet:"frame_time_of_last_event,optional,timestamp(microsecond)"`
	FrameTimeOffsetOfLastEvent  float64   `parquet:"frame_time_offset_of_last_event"`
	Area                        float64   `parquet:"area"`
	Energy                      float64   `parquet:"energy"`
	QualityFlag                 int64     `parquet:"quality_flag"`
}

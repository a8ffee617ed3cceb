package geoparquet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Description summarizes an existing GeoParquet file
type Description struct {
	RowCount int64
	Columns  []string
	Geo      *GeoMetadata
}

// Describe opens a GeoParquet file and reads its row count, top-level
// columns and geo metadata
func Describe(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	file, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%s is not a parquet file: %w", path, err)
	}

	description := Description{RowCount: file.NumRows()}
	for _, field := range file.Schema().Fields() {
		description.Columns = append(description.Columns, field.Name())
	}

	raw, ok := file.Lookup("geo")
	if !ok {
		return nil, fmt.Errorf("%s has no geo metadata", path)
	}
	var geo GeoMetadata
	if err = json.Unmarshal([]byte(raw), &geo); err != nil {
		return nil, fmt.Errorf("invalid geo metadata in %s: %w", path, err)
	}
	if _, ok = geo.Columns[geo.PrimaryColumn]; !ok {
		return nil, fmt.Errorf("geo metadata of %s does not describe its primary column %s", path, geo.PrimaryColumn)
	}
	description.Geo = &geo
	return &description, nil
}

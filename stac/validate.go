package stac

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/venicegeo/goes-glm-stac/geoparquet"
	"github.com/venicegeo/goes-glm-stac/model"
)

// Core schema IDs
const (
	ItemSchema       = "https://schemas.stacspec.org/v1.0.0/item-spec/json-schema/item.json"
	CollectionSchema = "https://schemas.stacspec.org/v1.0.0/collection-spec/json-schema/collection.json"
)

// ErrUnknownExtension is returned for declared extensions without a bundled schema
var ErrUnknownExtension = errors.New("unknown extension")

// ErrLegacyField is returned for fields in the retired goes-glm: namespace
var ErrLegacyField = errors.New("legacy field")

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[string]string{
	ItemSchema:                "schemas/item.json",
	CollectionSchema:          "schemas/collection.json",
	model.GOESExtension:       "schemas/goes.json",
	model.ProcessingExtension: "schemas/processing.json",
	model.ProjectionExtension: "schemas/projection.json",
	model.DatacubeExtension:   "schemas/datacube.json",
	model.TableExtension:      "schemas/table.json",
	model.ScientificExtension: "schemas/scientific.json",
	model.ItemAssetsExtension: "schemas/item-assets.json",
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func schemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		compiler.AssertFormat = true
		for url, file := range schemaFiles {
			data, err := schemaFS.ReadFile(file)
			if err != nil {
				compileErr = err
				return
			}
			if err = compiler.AddResource(url, bytes.NewReader(data)); err != nil {
				compileErr = fmt.Errorf("schema %s: %w", file, err)
				return
			}
		}
		compiled = map[string]*jsonschema.Schema{}
		for url, file := range schemaFiles {
			schema, err := compiler.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("schema %s: %w", file, err)
				return
			}
			compiled[url] = schema
		}
	})
	return compiled, compileErr
}

// ValidateFile validates the STAC document at path. Local GeoParquet assets
// of an item must exist and hold the number of rows the item declares.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = Validate(data); err != nil {
		return err
	}
	return checkTables(filepath.Dir(path), data)
}

func checkTables(dir string, data []byte) error {
	var doc struct {
		Assets map[string]struct {
			Href     string `json:"href"`
			Type     string `json:"type"`
			RowCount *int64 `json:"table:row_count"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	for key, asset := range doc.Assets {
		if asset.Type != model.ParquetMediaType || isURL(asset.Href) {
			continue
		}
		path := asset.Href
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, filepath.FromSlash(path))
		}
		description, err := geoparquet.Describe(path)
		if err != nil {
			return fmt.Errorf("asset %s: %w", key, err)
		}
		if asset.RowCount != nil && *asset.RowCount != description.RowCount {
			return fmt.Errorf("asset %s declares %d rows, %s has %d", key, *asset.RowCount, asset.Href, description.RowCount)
		}
	}
	return nil
}

// Validate validates an item or collection against the core schema and the
// schema of every extension it declares
func Validate(data []byte) error {
	all, err := schemas()
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc interface{}
	if err = decoder.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	object, ok := doc.(map[string]interface{})
	if !ok {
		return errors.New("a STAC document must be a JSON object")
	}

	var core string
	var fields map[string]interface{}
	switch object["type"] {
	case "Feature":
		core = ItemSchema
		fields, _ = object["properties"].(map[string]interface{})
	case "Collection":
		core = CollectionSchema
		fields, _ = object["summaries"].(map[string]interface{})
	default:
		return fmt.Errorf("unsupported document type %v", object["type"])
	}

	for key := range fields {
		if strings.HasPrefix(key, model.LegacyPropertyPrefix) {
			return fmt.Errorf("%w: %s", ErrLegacyField, key)
		}
	}

	if err = all[core].Validate(doc); err != nil {
		return err
	}

	extensions, _ := object["stac_extensions"].([]interface{})
	for _, raw := range extensions {
		url, _ := raw.(string)
		schema, known := all[url]
		if !known {
			return fmt.Errorf("%w: %v", ErrUnknownExtension, raw)
		}
		if err = schema.Validate(doc); err != nil {
			return err
		}
	}
	return nil
}

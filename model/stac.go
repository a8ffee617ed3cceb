package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

// Properties is the flat property mapping of an item
type Properties map[string]interface{}

// Set adds a property, refusing to overwrite an existing key
func (p Properties) Set(key string, value interface{}) error {
	if _, exists := p[key]; exists {
		return fmt.Errorf("duplicate property key: %s", key)
	}
	p[key] = value
	return nil
}

// Keys returns the property keys in sorted order
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Link is a STAC link object
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// Provider is a STAC provider object
type Provider struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Asset is a STAC asset (or an item asset definition, which has no href).
// Extension fields such as table:columns live in Fields and are flattened
// into the asset object when marshalled.
type Asset struct {
	Href        string                 `json:"href,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Type        string                 `json:"type,omitempty"`
	Roles       []string               `json:"roles,omitempty"`
	Fields      map[string]interface{} `json:"-"`
}

// NewAsset creates an asset without extension fields
func NewAsset(href, title, mediaType string, roles []string) *Asset {
	return &Asset{
		Href:   href,
		Title:  title,
		Type:   mediaType,
		Roles:  append([]string{}, roles...),
		Fields: map[string]interface{}{},
	}
}

// Set sets an extension field
func (a *Asset) Set(key string, value interface{}) {
	if a.Fields == nil {
		a.Fields = map[string]interface{}{}
	}
	a.Fields[key] = value
}

// Definition returns a copy of the asset without its href, suitable for
// item_assets
func (a *Asset) Definition() *Asset {
	def := *a
	def.Href = ""
	def.Roles = append([]string{}, a.Roles...)
	def.Fields = make(map[string]interface{}, len(a.Fields))
	for key, value := range a.Fields {
		def.Fields[key] = value
	}
	return &def
}

type plainAsset Asset

// MarshalJSON implements json.Marshaler
func (a Asset) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(plainAsset(a))
	if err != nil || len(a.Fields) == 0 {
		return data, err
	}
	merged := map[string]interface{}{}
	if err = json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range a.Fields {
		if _, core := merged[key]; core {
			return nil, fmt.Errorf("asset field %s shadows a core field", key)
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Asset) UnmarshalJSON(data []byte) error {
	var plain plainAsset
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, core := range []string{"href", "title", "description", "type", "roles"} {
		delete(all, core)
	}
	*a = Asset(plain)
	a.Fields = all
	return nil
}

// Item is a STAC item. It is a GeoJSON feature with STAC members.
type Item struct {
	Type           string              `json:"type"`
	StacVersion    string              `json:"stac_version"`
	StacExtensions []string            `json:"stac_extensions"`
	ID             string              `json:"id"`
	Geometry       *geojson.Polygon    `json:"geometry"`
	Bbox           geojson.BoundingBox `json:"bbox,omitempty"`
	Properties     Properties          `json:"properties"`
	Links          []Link              `json:"links"`
	Assets         map[string]*Asset   `json:"assets"`
	Collection     string              `json:"collection,omitempty"`
}

// NewItem creates an empty item with the given ID
func NewItem(id string) *Item {
	return &Item{
		Type:           "Feature",
		StacVersion:    StacVersion,
		StacExtensions: []string{},
		ID:             id,
		Properties:     Properties{},
		Links:          []Link{},
		Assets:         map[string]*Asset{},
	}
}

// AddExtension declares an extension once
func (item *Item) AddExtension(url string) {
	item.StacExtensions = addExtension(item.StacExtensions, url)
}

// AddLink appends a link, replacing an existing link with the same rel for
// the single-valued rels self, root, parent and collection
func (item *Item) AddLink(link Link) {
	item.Links = addLink(item.Links, link)
}

// Extent is the spatio-temporal extent of a collection
type Extent struct {
	Spatial  SpatialExtent  `json:"spatial"`
	Temporal TemporalExtent `json:"temporal"`
}

// SpatialExtent is a list of bounding boxes, the first being the union
type SpatialExtent struct {
	Bbox []geojson.BoundingBox `json:"bbox"`
}

// TemporalExtent is a list of intervals; nil ends are open
type TemporalExtent struct {
	Interval [][]*string `json:"interval"`
}

// Collection is a STAC collection
type Collection struct {
	Type           string                 `json:"type"`
	StacVersion    string                 `json:"stac_version"`
	StacExtensions []string               `json:"stac_extensions"`
	ID             string                 `json:"id"`
	Title          string                 `json:"title,omitempty"`
	Description    string                 `json:"description"`
	Keywords       []string               `json:"keywords,omitempty"`
	License        string                 `json:"license"`
	Providers      []Provider             `json:"providers,omitempty"`
	Extent         Extent                 `json:"extent"`
	Summaries      map[string]interface{} `json:"summaries,omitempty"`
	Links          []Link                 `json:"links"`
	Assets         map[string]*Asset      `json:"assets,omitempty"`
	ItemAssets     map[string]*Asset      `json:"item_assets,omitempty"`
	SciDOI         string                 `json:"sci:doi,omitempty"`
	SciCitation    string                 `json:"sci:citation,omitempty"`
}

// NewCollection creates an empty collection with the given ID
func NewCollection(id string) *Collection {
	return &Collection{
		Type:           "Collection",
		StacVersion:    StacVersion,
		StacExtensions: []string{},
		ID:             id,
		Links:          []Link{},
	}
}

// AddExtension declares an extension once
func (c *Collection) AddExtension(url string) {
	c.StacExtensions = addExtension(c.StacExtensions, url)
}

// AddLink behaves like Item.AddLink
func (c *Collection) AddLink(link Link) {
	c.Links = addLink(c.Links, link)
}

func addExtension(extensions []string, url string) []string {
	for _, existing := range extensions {
		if existing == url {
			return extensions
		}
	}
	return append(extensions, url)
}

var singleValuedRels = map[string]bool{"self": true, "root": true, "parent": true, "collection": true}

func addLink(links []Link, link Link) []Link {
	if singleValuedRels[link.Rel] {
		for i, existing := range links {
			if existing.Rel == link.Rel {
				links[i] = link
				return links
			}
		}
	}
	return append(links, link)
}

// HasLegacyKeys reports whether any key uses the pre-extension goes-glm: prefix
func (p Properties) HasLegacyKeys() bool {
	for key := range p {
		if strings.HasPrefix(key, LegacyPropertyPrefix) {
			return true
		}
	}
	return false
}

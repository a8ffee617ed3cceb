package stac

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/venicegeo/goes-glm-stac/model"
)

// ReadCollectionRef reads the ID of an existing collection document. The
// href is kept as given.
func ReadCollectionRef(path string) (*CollectionRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s is not valid JSON: %w", path, err)
	}
	if doc.Type != "Collection" || doc.ID == "" {
		return nil, fmt.Errorf("%s is not a STAC collection", path)
	}
	return &CollectionRef{ID: doc.ID, Href: path}, nil
}

// WriteItem writes item to dest. Local asset hrefs become relative to the
// item and a self link is added.
func WriteItem(item *model.Item, dest string) error {
	dir := filepath.Dir(dest)
	for _, asset := range item.Assets {
		asset.Href = relativeHref(dir, asset.Href)
	}
	for i, link := range item.Links {
		if link.Rel == "collection" {
			item.Links[i].Href = relativeHref(dir, link.Href)
		}
	}
	self, err := selfHref(dest)
	if err != nil {
		return err
	}
	item.AddLink(model.Link{Rel: "self", Href: self, Type: "application/json"})
	return WriteJSON(dest, item)
}

// WriteCollection writes collection to dest with root and self links
func WriteCollection(collection *model.Collection, dest string) error {
	self, err := selfHref(dest)
	if err != nil {
		return err
	}
	collection.AddLink(model.Link{Rel: "root", Href: "./" + filepath.Base(dest), Type: "application/json", Title: collection.Title})
	collection.AddLink(model.Link{Rel: "self", Href: self, Type: "application/json"})
	return WriteJSON(dest, collection)
}

// WriteJSON writes doc as indented JSON, creating parent directories
func WriteJSON(dest string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, append(data, '\n'), 0644)
}

func selfHref(dest string) (string, error) {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// relativeHref rewrites a local path relative to dir. URLs and paths on
// other volumes are returned unchanged.
func relativeHref(dir, href string) string {
	if href == "" || isURL(href) {
		return href
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return href
	}
	absHref, err := filepath.Abs(href)
	if err != nil {
		return href
	}
	rel, err := filepath.Rel(absDir, absHref)
	if err != nil {
		return href
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

func isURL(href string) bool {
	u, err := url.Parse(href)
	return err == nil && u.Scheme != "" && len(u.Scheme) > 1
}

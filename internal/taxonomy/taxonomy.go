// Package taxonomy expone el catalogo jerarquico de tags (solo lectura).
package taxonomy

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var embeddedTaxonomy []byte

const defaultSearchLimit = 50

// Tag es una entrada hoja; ID es el path punteado completo.
type Tag struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	RelatedTags []string `json:"relatedTags,omitempty"`
}

type Category struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Description   string     `json:"description,omitempty" yaml:"description"`
	Subcategories []Category `json:"subcategories,omitempty" yaml:"subcategories"`
	Tags          []rawTag   `json:"tags,omitempty" yaml:"tags"`
}

type rawTag struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	RelatedTags []string `json:"relatedTags,omitempty" yaml:"relatedTags"`
}

// Lookup es el contrato que consume el motor para enriquecer tags.
type Lookup interface {
	Tag(id string) (Tag, bool)
}

// Taxonomy indexa la jerarquia en memoria. Inmutable tras Parse.
type Taxonomy struct {
	Version    string     `yaml:"version"`
	Categories []Category `yaml:"categories"`

	tags  []Tag
	byID  map[string]int
	paths map[string]*Category
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Parse decodifica el YAML y construye los indices.
func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	t.byID = make(map[string]int)
	t.paths = make(map[string]*Category)
	for i := range t.Categories {
		if err := t.index(&t.Categories[i], t.Categories[i].ID); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// Default devuelve la taxonomia embebida.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Parse(embeddedTaxonomy)
	})
	return defaultTax, defaultErr
}

func (t *Taxonomy) index(cat *Category, path string) error {
	t.paths[path] = cat
	for _, raw := range cat.Tags {
		id := path + "." + raw.ID
		if _, dup := t.byID[id]; dup {
			return fmt.Errorf("decode taxonomy: duplicated tag %q", id)
		}
		t.byID[id] = len(t.tags)
		t.tags = append(t.tags, Tag{
			ID:          id,
			Name:        raw.Name,
			Category:    path,
			Description: raw.Description,
			RelatedTags: raw.RelatedTags,
		})
	}
	for i := range cat.Subcategories {
		sub := &cat.Subcategories[i]
		if err := t.index(sub, path+"."+sub.ID); err != nil {
			return err
		}
	}
	return nil
}

// TotalTags cuenta todas las hojas.
func (t *Taxonomy) TotalTags() int {
	return len(t.tags)
}

// Tag busca por id completo.
func (t *Taxonomy) Tag(id string) (Tag, bool) {
	i, ok := t.byID[strings.TrimSpace(id)]
	if !ok {
		return Tag{}, false
	}
	return t.tags[i], true
}

// Category devuelve la categoria por path punteado y todos los tags bajo ella.
func (t *Taxonomy) Category(path string) (*Category, []Tag, bool) {
	cat, ok := t.paths[path]
	if !ok {
		return nil, nil, false
	}
	var tags []Tag
	for _, tag := range t.tags {
		if tag.Category == path || strings.HasPrefix(tag.Category, path+".") {
			tags = append(tags, tag)
		}
	}
	return cat, tags, true
}

// Search filtra por nombre, id o descripcion (case-insensitive) y opcionalmente por categoria.
// Devuelve los resultados limitados y el total encontrado.
func (t *Taxonomy) Search(query, category string, limit int) ([]Tag, int) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var found []Tag
	for _, tag := range t.tags {
		if category != "" && !strings.HasPrefix(tag.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(tag.Name), q) &&
			!strings.Contains(strings.ToLower(tag.ID), q) &&
			!strings.Contains(strings.ToLower(tag.Description), q) {
			continue
		}
		found = append(found, tag)
	}
	total := len(found)
	if len(found) > limit {
		found = found[:limit]
	}
	return found, total
}

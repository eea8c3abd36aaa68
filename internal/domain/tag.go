package domain

import "strings"

const (
	TagTypeMust = "must"
	TagTypeNice = "nice"
)

// TagSelection es una preferencia elegida por el usuario dentro de la taxonomia.
type TagSelection struct {
	TagID     string `json:"tagId"`
	TagType   string `json:"tagType"`   // "must" o "nice"
	Intensity int    `json:"intensity"` // 1-5
	Category  string `json:"category"`
}

// IsMust indica si el tag es un must-have.
func (t TagSelection) IsMust() bool {
	return t.TagType == TagTypeMust
}

// RootCategory devuelve el primer segmento del path punteado ("bdsm.bondage.x" -> "bdsm").
func (t TagSelection) RootCategory() string {
	id := strings.TrimSpace(t.TagID)
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}

// DedupeTags elimina tagIds repetidos conservando la seleccion de mayor intensidad.
// Ante empate gana el must-have; el orden de primera aparicion se conserva.
func DedupeTags(tags []TagSelection) []TagSelection {
	if tags == nil {
		return nil
	}
	out := make([]TagSelection, 0, len(tags))
	index := make(map[string]int, len(tags))
	for _, t := range tags {
		i, ok := index[t.TagID]
		if !ok {
			index[t.TagID] = len(out)
			out = append(out, t)
			continue
		}
		prev := out[i]
		if t.Intensity > prev.Intensity || (t.Intensity == prev.Intensity && t.IsMust() && !prev.IsMust()) {
			out[i] = t
		}
	}
	return out
}

// TagIDSet construye el conjunto de tagIds.
func TagIDSet(tags []TagSelection) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t.TagID] = struct{}{}
	}
	return set
}

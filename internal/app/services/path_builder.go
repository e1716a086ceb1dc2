package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/terratensor/siruta/internal/core/domain"
)

const maxPathDepth = 8 // максимум для административной иерархии

// PathBuilder computes dotted materialized paths (RO.RO1.RO11.CJ.54975) by
// walking parent links. The paths feed the search index only; the seed file
// never carries them.
type PathBuilder struct {
	territories []*domain.Territory
	byCode      map[string]*domain.Territory

	// Кэш готовых путей
	memo map[string]string
}

func NewPathBuilder(territories []*domain.Territory) *PathBuilder {
	b := &PathBuilder{
		territories: territories,
		byCode:      make(map[string]*domain.Territory, len(territories)),
		memo:        make(map[string]string, len(territories)),
	}
	for _, t := range territories {
		b.byCode[t.Code] = t
	}
	return b
}

// BuildPaths fills HierarchyPath for every territory. Unlike the advisory
// validator this is strict: a dangling parent or a cycle is an error,
// because a broken tree must not reach the index.
func (b *PathBuilder) BuildPaths() error {
	for _, t := range b.territories {
		path, err := b.pathFor(t)
		if err != nil {
			return err
		}
		t.HierarchyPath = path
	}

	log.Printf("Built hierarchy paths for %d territories", len(b.territories))
	return nil
}

// pathFor поднимается по родительским ссылкам до корня или до закэшированного предка
func (b *PathBuilder) pathFor(t *domain.Territory) (string, error) {
	if path, ok := b.memo[t.Code]; ok {
		return path, nil
	}

	segments := []string{t.Code}
	seen := map[string]bool{t.Code: true}
	current := t
	var prefix string

	for current.ParentCode != "" {
		if cached, ok := b.memo[current.ParentCode]; ok {
			prefix = cached
			break
		}

		parent, ok := b.byCode[current.ParentCode]
		if !ok {
			return "", fmt.Errorf("unresolved parent %q for %q", current.ParentCode, current.Code)
		}
		if seen[parent.Code] {
			return "", fmt.Errorf("cycle detected at %q", parent.Code)
		}
		if len(segments) >= maxPathDepth {
			return "", fmt.Errorf("path for %q exceeds depth %d", t.Code, maxPathDepth)
		}

		seen[parent.Code] = true
		segments = append(segments, parent.Code)
		current = parent
	}

	// Сегменты собраны от листа к корню, разворачиваем
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	path := strings.Join(segments, ".")
	if prefix != "" {
		path = prefix + "." + path
	}

	b.memo[t.Code] = path
	return path, nil
}

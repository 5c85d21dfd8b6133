package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"festival-sync/core/slug"
	"festival-sync/feature/festival/models"

	"gorm.io/gorm"
)

// namePrefixLength is how much of the candidate name the default
// similarity check compares.
const namePrefixLength = 20

// SimilarityFunc decides whether a candidate event name and an existing
// festival name refer to the same event. It is a heuristic policy slot:
// swap it to change fuzzy matching without touching the exact-slug path.
type SimilarityFunc func(candidateName, existingName string) bool

// PrefixSimilarity is the default policy: case-insensitive containment of
// the first 20 characters of the candidate name in the existing name.
// Both false positives (unrelated events sharing a name prefix) and false
// negatives (a renamed event) are accepted tradeoffs.
func PrefixSimilarity(candidateName, existingName string) bool {
	prefix := []rune(strings.ToLower(strings.TrimSpace(candidateName)))
	if len(prefix) == 0 {
		return false
	}
	if len(prefix) > namePrefixLength {
		prefix = prefix[:namePrefixLength]
	}
	return strings.Contains(strings.ToLower(existingName), string(prefix))
}

// DedupGuard is the existence check for ingestion paths that lack a stable
// external identifier (manually curated or secondary-source events).
type DedupGuard struct {
	db *gorm.DB
	// Similarity is the fallback policy applied when no exact slug
	// match exists. Defaults to PrefixSimilarity.
	Similarity SimilarityFunc
}

// NewDedupGuard creates a guard with the default similarity policy.
func NewDedupGuard(db *gorm.DB) *DedupGuard {
	return &DedupGuard{db: db, Similarity: PrefixSimilarity}
}

// Exists reports whether a festival matching the candidate name is already
// stored. The primary check is an exact match on the candidate's derived
// slug; the fallback applies the similarity policy against every existing
// festival name. Either hit means "treat as duplicate, skip insert".
func (g *DedupGuard) Exists(ctx context.Context, candidateName string) (bool, error) {
	candidateSlug := slug.Make(candidateName)

	if candidateSlug != "" {
		var existing models.Festival
		err := g.db.WithContext(ctx).Where("slug = ?", candidateSlug).First(&existing).Error
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to look up festival slug: %w", err)
		}
	}

	var names []string
	if err := g.db.WithContext(ctx).Model(&models.Festival{}).Pluck("name", &names).Error; err != nil {
		return false, fmt.Errorf("failed to list festival names: %w", err)
	}

	for _, name := range names {
		if g.Similarity(candidateName, name) {
			return true, nil
		}
	}

	return false, nil
}

package normalize

import (
	"log"

	"trendpulse/types"
)

// FingerprintStore is an optional cross-run duplicate filter keyed on row
// fingerprints. A probabilistic implementation may report false positives
// but never false negatives within its retention window.
type FingerprintStore interface {
	Exists(fingerprint string) (bool, error)
	Add(fingerprint string) error
}

// Dedupe removes duplicate rows, first seen wins, under two independent
// keys applied in row order: (platform, post_id) and
// (platform, text, posted_at). A row excluded by either key is dropped
// even if unique under the other.
func Dedupe(rows []types.Row) []types.Row {
	return DedupeWithStore(rows, nil)
}

// DedupeWithStore behaves like Dedupe and additionally consults a
// fingerprint store for duplicates seen in earlier runs. Store failures
// degrade to in-memory-only deduplication with a logged warning.
func DedupeWithStore(rows []types.Row, store FingerprintStore) []types.Row {
	seenID := make(map[string]bool, len(rows))
	seenFP := make(map[string]bool, len(rows))

	deduped := make([]types.Row, 0, len(rows))
	for _, r := range rows {
		idKey := r.IdentityKey()
		if seenID[idKey] {
			continue
		}
		fp := r.Fingerprint()
		if seenFP[fp] {
			continue
		}
		if store != nil {
			exists, err := store.Exists(fp)
			if err != nil {
				log.Printf("Warning: fingerprint lookup failed: %v", err)
			} else if exists {
				seenID[idKey] = true
				seenFP[fp] = true
				continue
			}
		}
		seenID[idKey] = true
		seenFP[fp] = true
		if store != nil {
			if err := store.Add(fp); err != nil {
				log.Printf("Warning: fingerprint add failed: %v", err)
			}
		}
		deduped = append(deduped, r)
	}
	return deduped
}

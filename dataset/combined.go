package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"trendpulse/types"
)

// WriteCombined persists the canonical table. Rows are terminal once
// written; later analysis stages read the file back rather than mutating
// rows in place.
func WriteCombined(path string, rows []types.Row) error {
	return WriteTable(path, rows)
}

// ReadCombined loads the canonical table.
func ReadCombined(path string) ([]types.Row, error) {
	return ReadTable[types.Row](path)
}

// WriteHashtagTables writes one (platform, post_id, hashtag) side table
// per platform under dir, deduplicated. Platforms without hashtags produce
// no file.
func WriteHashtagTables(dir string, records []types.HashtagRecord) error {
	byPlatform := make(map[types.Platform][]types.HashtagRecord)
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		key := string(rec.Platform) + "\x00" + rec.PostID + "\x00" + rec.Hashtag
		if seen[key] {
			continue
		}
		seen[key] = true
		byPlatform[rec.Platform] = append(byPlatform[rec.Platform], rec)
	}

	for platform, recs := range byPlatform {
		path := filepath.Join(dir, fmt.Sprintf("%s_hashtags.csv", platform))
		if err := WriteTable(path, recs); err != nil {
			return err
		}
	}
	return nil
}

// ReadHashtagTables loads every *_hashtags.csv side table under dir.
// Unreadable files are skipped; a missing directory yields no records.
func ReadHashtagTables(dir string) []types.HashtagRecord {
	matches, err := filepath.Glob(filepath.Join(dir, "*_hashtags.csv"))
	if err != nil {
		return nil
	}
	var all []types.HashtagRecord
	for _, path := range matches {
		recs, err := ReadTable[types.HashtagRecord](path)
		if err != nil {
			continue
		}
		all = append(all, recs...)
	}
	return all
}

// HashtagCounts aggregates hashtag counts per post id across side tables.
func HashtagCounts(records []types.HashtagRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		if strings.TrimSpace(rec.PostID) == "" {
			continue
		}
		counts[rec.PostID]++
	}
	return counts
}

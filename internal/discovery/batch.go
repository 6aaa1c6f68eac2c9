package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/ironsheep/card-fusion/internal/fusion"
)

// flatHeicPattern matches <baseName>_<direction>.HEIC, case-insensitively.
// The base name may itself end in an underscore and digits.
var flatHeicPattern = regexp.MustCompile(`(?i)^(.+)_(up|down|left|right)\.heic$`)

// GroupFlatHeicFiles groups a flat directory of HEIC photographs by card.
//
// Filenames not matching <baseName>_<direction>.HEIC are ignored. Files are
// grouped by baseName; if a direction appears twice for one card, the last
// file in name order wins.
//
// Returns:
//   - groups: complete cards, sorted by name.
//   - skipped: one *IncompleteGroupError per card missing a direction, sorted
//     by name. These are diagnostics, not failures.
//   - err: non-nil only if dir cannot be listed.
func GroupFlatHeicFiles(dir string, required []fusion.Direction) (groups []CardGroup, skipped []*IncompleteGroupError, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, nil, fmt.Errorf("failed to read batch directory %s: %w", dir, err)
	}

	byName := make(map[string]map[fusion.Direction]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := flatHeicPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		baseName, token := m[1], m[2]
		d, ok := fusion.ParseDirection(token)
		if !ok {
			continue
		}
		files, ok := byName[baseName]
		if !ok {
			files = make(map[fusion.Direction]string)
			byName[baseName] = files
		}
		files[d] = filepath.Join(dir, entry.Name())
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := CardGroup{Name: name, Files: byName[name]}
		if !group.Complete(required) {
			skipped = append(skipped, &IncompleteGroupError{Name: name, Missing: group.Missing(required)})
			continue
		}
		groups = append(groups, group)
	}
	return groups, skipped, nil
}

package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/card-fusion/internal/fusion"
	"github.com/ironsheep/card-fusion/internal/imaging"
)

// pictureFormats lists the formats accepted in single-directory mode, as
// named by imaging.FormatFromPath.
var pictureFormats = map[string]bool{"png": true, "jpeg": true, "heic": true}

// FindPictureFiles resolves the photographs of one card from dir.
//
// Every regular file in dir (non-recursive, in name order) whose lower-cased
// name contains a lower-cased direction keyword and ends in .png, .jpg, .jpeg
// or .heic (any case) is assigned to that direction. One file may serve
// several directions. When several files match the same direction the last
// one in name order wins.
//
// Returns:
//   - CardGroup named after the base name of dir, with all of required resolved.
//   - error wrapping ErrDirectoryNotFound if dir does not exist, or a
//     *MissingImagesError listing the unresolved directions.
func FindPictureFiles(dir string, required []fusion.Direction) (CardGroup, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return CardGroup{}, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return CardGroup{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	group := CardGroup{
		Name:  filepath.Base(filepath.Clean(dir)),
		Files: make(map[fusion.Direction]string),
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !pictureFormats[imaging.FormatFromPath(entry.Name())] {
			continue
		}
		lowered := strings.ToLower(entry.Name())
		for _, d := range required {
			if strings.Contains(lowered, strings.ToLower(d.String())) {
				group.Files[d] = filepath.Join(dir, entry.Name())
			}
		}
	}

	if !group.Complete(required) {
		return CardGroup{}, &MissingImagesError{Dir: dir, Missing: group.Missing(required)}
	}
	return group, nil
}

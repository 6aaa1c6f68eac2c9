package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/card-fusion/internal/fusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates empty files under dir. Resolution only looks at names.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
}

func TestFindPictureFiles_AllFour(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "card42")
	require.NoError(t, os.Mkdir(dir, 0o755))
	touch(t, dir, "card_Up.png", "card_Down.jpg", "card_Left.heic", "card_Right.png", "notes.txt")

	group, err := FindPictureFiles(dir, fusion.Directions())
	require.NoError(t, err)

	assert.Equal(t, "card42", group.Name)
	assert.Equal(t, map[fusion.Direction]string{
		fusion.Up:    filepath.Join(dir, "card_Up.png"),
		fusion.Down:  filepath.Join(dir, "card_Down.jpg"),
		fusion.Left:  filepath.Join(dir, "card_Left.heic"),
		fusion.Right: filepath.Join(dir, "card_Right.png"),
	}, group.Files)
}

func TestFindPictureFiles_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"lower", []string{"card_up.png", "card_down.jpg", "card_left.heic", "card_right.png"}},
		{"upper", []string{"CARD_UP.PNG", "CARD_DOWN.JPEG", "CARD_LEFT.HEIC", "CARD_RIGHT.JPG"}},
		{"mixed", []string{"Card_uP.Png", "card-DOWN.jpg", "LeftSide.HeIc", "xRIGHTx.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			group, err := FindPictureFiles(dir, fusion.Directions())
			require.NoError(t, err)
			for i, d := range fusion.Directions() {
				assert.Equal(t, filepath.Join(dir, tt.files[i]), group.Files[d], d.String())
			}
		})
	}
}

func TestFindPictureFiles_TrailingSeparator(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scan_007")
	require.NoError(t, os.Mkdir(dir, 0o755))
	touch(t, dir, "a_Up.png", "a_Down.png", "a_Left.png", "a_Right.png")

	group, err := FindPictureFiles(dir+string(filepath.Separator), fusion.Directions())
	require.NoError(t, err)
	assert.Equal(t, "scan_007", group.Name)
}

func TestFindPictureFiles_MissingDown(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "card_Up.png", "card_Left.png", "card_Right.png")

	_, err := FindPictureFiles(dir, fusion.Directions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredImages)

	var missing *MissingImagesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []fusion.Direction{fusion.Down}, missing.Missing)
	assert.Contains(t, err.Error(), "[Down]")
}

func TestFindPictureFiles_IgnoresOtherExtensionsAndDirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "card_Up.png", "card_Down.tiff", "card_Down.gif", "card_Left.png", "card_Right.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Down.png"), 0o755))

	_, err := FindPictureFiles(dir, fusion.Directions())
	var missing *MissingImagesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []fusion.Direction{fusion.Down}, missing.Missing)
}

func TestFindPictureFiles_LastMatchWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_Up.png", "b_Up.png", "card_Down.png", "card_Left.png", "card_Right.png")

	group, err := FindPictureFiles(dir, fusion.Directions())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b_Up.png"), group.Files[fusion.Up])
}

func TestFindPictureFiles_OneFileSeveralDirections(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "UpLeft.png", "DownRight.png")

	group, err := FindPictureFiles(dir, fusion.Directions())
	require.NoError(t, err)
	assert.Equal(t, group.Files[fusion.Up], group.Files[fusion.Left])
	assert.Equal(t, group.Files[fusion.Down], group.Files[fusion.Right])
}

func TestFindPictureFiles_RequiredSubset(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "card_Up.png", "card_Down.png")

	group, err := FindPictureFiles(dir, []fusion.Direction{fusion.Up, fusion.Down})
	require.NoError(t, err)
	assert.Len(t, group.Files, 2)
}

func TestFindPictureFiles_DirectoryNotFound(t *testing.T) {
	_, err := FindPictureFiles(filepath.Join(t.TempDir(), "absent"), fusion.Directions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestFindPictureFiles_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "card_Up.png")

	_, err := FindPictureFiles(filepath.Join(dir, "card_Up.png"), fusion.Directions())
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

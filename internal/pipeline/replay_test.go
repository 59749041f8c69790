package pipeline

import (
	"bytes"
	"context"
	"ezodus-market/internal/export"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const auctionsPage = `<html><body>
<table id="sellCharList">
	<thead><tr><th>Name</th><th>Character</th><th>Price</th></tr></thead>
	<tbody>
		<tr><td>Aria</td><td>120 Elite Knight</td><td>5000 gold</td></tr>
		<tr><td>Bo</td><td>80 Master Sorcerer</td><td>2000 gold</td></tr>
	</tbody>
</table>
</body></html>`

const swordPage = `<html><body>
<table class="gunz-table">
	<tr><td>#</td><td>Name</td><td>Skill</td></tr>
	<tr><td>1</td><td><a href="/character/Aria">Aria</a></td><td>450</td></tr>
</table>
</body></html>`

const magicPage = `<html><body>
<table class="gunz-table">
	<tr><td>#</td><td>Name</td><td>Skill</td></tr>
	<tr><td>1</td><td><a href="/character/Cid">Cid</a></td><td>310</td></tr>
	<tr><td>2</td><td><a href="/character/Bo">Bo</a></td><td>300</td></tr>
</table>
</body></html>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestReplay(t *testing.T) {
	root := t.TempDir()
	auctionsPath := filepath.Join(root, "auctions.html")
	writeFile(t, auctionsPath, auctionsPage)

	dir := filepath.Join(root, "highscores")
	require.NoError(t, os.Mkdir(dir, 0700))
	writeFile(t, filepath.Join(dir, "sword_0.html"), swordPage)
	writeFile(t, filepath.Join(dir, "Magic_0.html"), magicPage)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	cfg := testConfig()
	source, err := ReplaySource(cfg, auctionsPath, dir)
	require.NoError(t, err)

	var console bytes.Buffer
	result, err := Run(context.Background(), source, cfg, &console, nil)
	require.NoError(t, err)

	records := export.Records(result.Auctions)
	require.Len(t, records, 2)
	require.Equal(t, []string{"Aria", "5000", "KNIGHT", "120", "450", "", "", "", "", ""}, records[0].Strings())
	require.Equal(t, []string{"Bo", "2000", "SORCERER", "80", "", "", "", "", "300", ""}, records[1].Strings())
	require.Equal(t, []string{
		"auction",
		"magic/0", "magic/1",
		"club/0",
		"sword/0", "sword/1",
		"axe/0",
	}, source.Fetches())
}

func TestReplayInvalidFilename(t *testing.T) {
	root := t.TempDir()
	auctionsPath := filepath.Join(root, "auctions.html")
	writeFile(t, auctionsPath, auctionsPage)

	for _, name := range []string{"sword.html", "fishing_0.html", "sword_x.html", "sword_-1.html"} {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, name), swordPage)
		_, err := ReplaySource(testConfig(), auctionsPath, dir)
		require.Error(t, err, name)
	}
}

func TestReplayMissingAuctions(t *testing.T) {
	_, err := ReplaySource(testConfig(), filepath.Join(t.TempDir(), "missing.html"), "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/springgraph/config"
	"github.com/TFMV/springgraph/ingest"
	"github.com/TFMV/springgraph/sim"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, LogDebug)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&logs)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

func TestLayoutCommandWritesAdjacency(t *testing.T) {
	in := writeFile(t, "chain.txt", "3\n100 300\n110 300\n120 300\n1 2\n2 3\n")
	out := filepath.Join(t.TempDir(), "out.txt")

	logs, err := execute(t, "layout", in, "-o", out, "-f", "adjacency", "-n", "150", "--dt", "0.1")
	require.NoError(t, err, logs)
	assert.Contains(t, logs, "loaded graph")
	assert.Contains(t, logs, "simulation finished")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	res, err := ingest.NewAdjacencyProcessor(ingest.Options{}).ProcessData(data)
	require.NoError(t, err)

	nodes := res.Graph.Nodes()
	assert.InDelta(t, 50, nodes[1].Position().X-nodes[0].Position().X, 1e-3)
	assert.InDelta(t, 50, nodes[2].Position().X-nodes[1].Position().X, 1e-3)
	assert.Equal(t, 2, res.Graph.LinkCount())
}

func TestLayoutCommandClampsToViewport(t *testing.T) {
	in := writeFile(t, "edge.txt", "2\n1 1\n2 1\n")
	out := filepath.Join(t.TempDir(), "out.txt")

	_, err := execute(t, "layout", in, "-o", out, "-f", "adjacency", "-n", "5", "--dt", "0.1", "--width", "50", "--height", "50")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	res, err := ingest.NewAdjacencyProcessor(ingest.Options{}).ProcessData(data)
	require.NoError(t, err)
	for _, n := range res.Graph.Nodes() {
		p := n.Position()
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 50.0)
	}
}

func TestLayoutCommandRejectsBadInput(t *testing.T) {
	in := writeFile(t, "bad.txt", "2\n0 0\n1 1\n5 1\n")
	_, err := execute(t, "layout", in, "-f", "json")
	require.Error(t, err)
	assert.True(t, ingest.IsKind(err, ingest.KindInvalidReference))
}

func TestLayoutCommandUsesConfig(t *testing.T) {
	cfgPath := writeFile(t, "springgraph.toml", "[run]\nsteps = 3\ndelta_time = 0.1\n[viewport]\nclamp = false\n")
	in := writeFile(t, "pair.txt", "2\n0 0\n0 25\n")
	out := filepath.Join(t.TempDir(), "out.txt")

	_, err := execute(t, "--config", cfgPath, "layout", in, "-o", out, "-f", "adjacency")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "0 -"), "first node pushed upward past the clamp: %s", lines[1])
}

func TestLayoutCommandFlagErrors(t *testing.T) {
	in := writeFile(t, "g.txt", "1\n0 0\n")

	_, err := execute(t, "layout", in, "-f", "gif")
	assert.ErrorContains(t, err, "unsupported output format")

	_, err = execute(t, "layout", in, "--dt=-1")
	assert.ErrorContains(t, err, "delta time")

	_, err = execute(t, "layout")
	assert.Error(t, err)
}

func newTestWatchModel(t *testing.T) (watchModel, *fakeClock) {
	t.Helper()
	res, err := ingest.NewAdjacencyProcessor(ingest.Options{}).ProcessData([]byte("2\n400 300\n410 300\n1 2\n"))
	require.NoError(t, err)

	fc := &fakeClock{t: time.Unix(0, 0)}
	clock := sim.NewClockWithNow(fc.now)
	cfg := config.Default()
	runner := sim.NewRunner(res.Graph, clock, viewportFor(cfg), New(&bytes.Buffer{}, LogInfo).Logger)
	return newWatchModel("g.txt", res, cfg, clock, runner), fc
}

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func TestWatchModelAdvancesWithWallClock(t *testing.T) {
	m, fc := newTestWatchModel(t)
	m.Init()

	fc.t = fc.t.Add(100 * time.Millisecond)
	next, cmd := m.Update(frameMsg(fc.t))
	require.NotNil(t, cmd)
	wm := next.(watchModel)

	assert.Equal(t, 1, wm.last.Step)
	assert.InDelta(t, 0.1, wm.last.Delta, 1e-9)
	assert.Contains(t, wm.View(), "step 1")
}

func TestWatchModelPause(t *testing.T) {
	m, fc := newTestWatchModel(t)
	m.Init()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	wm := next.(watchModel)
	require.True(t, wm.paused)
	assert.Contains(t, wm.View(), "paused")

	fc.t = fc.t.Add(10 * time.Second)
	next, _ = wm.Update(frameMsg(fc.t))
	wm = next.(watchModel)
	assert.Zero(t, wm.runner.Steps())

	next, _ = wm.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	wm = next.(watchModel)
	fc.t = fc.t.Add(50 * time.Millisecond)
	next, _ = wm.Update(frameMsg(fc.t))
	wm = next.(watchModel)
	assert.InDelta(t, 0.05, wm.last.Delta, 1e-9, "paused time is not simulated")
}

func TestWatchModelQuitAndResize(t *testing.T) {
	m, _ := newTestWatchModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	wm := next.(watchModel)
	assert.Equal(t, 60, wm.cols)
	assert.Equal(t, 17, wm.rows)

	_, cmd := wm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "springgraph "+Version)
}

func TestLayoutCommandWritesStdout(t *testing.T) {
	in := writeFile(t, "pair.txt", "2\n100 100\n150 100\n1 2\n")
	out, err := execute(t, "layout", in, "-f", "json", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"nodes"`)
	assert.Contains(t, out, `"linkCount": 1`)
}

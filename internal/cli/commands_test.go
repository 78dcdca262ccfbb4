package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/graph"
	assetio "github.com/matzehuels/assetgraph/pkg/io"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

const testPortfolio = `
[[assets]]
id = "E1"
name = "Exxon"
class = "equity"
sector = "Energy"
ticker = "XOM"

[[assets]]
id = "C1"
name = "Crude Oil"
class = "commodity"
contract_type = "crude_oil"

[[assets]]
id = "Cu1"
name = "Euro"
class = "currency"
pair = "EUR/USD"
`

// setup writes the portfolio and a config with caching disabled.
func setup(t *testing.T) (dir, portfolio, cfg string) {
	t.Helper()
	dir = t.TempDir()
	portfolio = filepath.Join(dir, "portfolio.toml")
	cfg = filepath.Join(dir, "assetgraph.toml")
	if err := os.WriteFile(portfolio, []byte(testPortfolio), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"none\"\ndir = \""+filepath.Join(dir, "cache")+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, portfolio, cfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMetricsCommandJSON(t *testing.T) {
	_, portfolio, cfg := setup(t)

	out, err := execute(t, "metrics", portfolio, "--json", "--config", cfg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	var report struct {
		AssetCount        int            `json:"asset_count"`
		RelationshipCount int            `json:"relationship_count"`
		TypeDistribution  map[string]int `json:"type_distribution"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if report.AssetCount != 3 {
		t.Errorf("asset_count = %d, want 3", report.AssetCount)
	}
	if report.TypeDistribution["commodity_exposure"] != 1 {
		t.Errorf("type_distribution = %v, want one commodity_exposure", report.TypeDistribution)
	}
}

func TestMetricsCommandSkipDiscovery(t *testing.T) {
	_, portfolio, cfg := setup(t)

	out, err := execute(t, "metrics", portfolio, "--json", "--skip-discovery", "--config", cfg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if !strings.Contains(out, `"relationship_count": 0`) {
		t.Errorf("expected no relationships without discovery, got %s", out)
	}
}

func TestExportCommand(t *testing.T) {
	dir, portfolio, cfg := setup(t)
	output := filepath.Join(dir, "out.viz.json")

	if _, err := execute(t, "export", portfolio, "-o", output, "--seed", "7", "--config", cfg); err != nil {
		t.Fatalf("export: %v", err)
	}
	v, err := graph.ReadVisualizationFile(output)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(v.Nodes) != 3 || len(v.Arrows) != 1 {
		t.Errorf("nodes/arrows = %d/%d, want 3/1", len(v.Nodes), len(v.Arrows))
	}
	if v.Seed != 7 {
		t.Errorf("seed = %d, want 7", v.Seed)
	}
	if v.Metrics == nil {
		t.Error("export should carry metrics")
	}
}

func TestExportCommandStdout(t *testing.T) {
	_, portfolio, cfg := setup(t)

	out, err := execute(t, "export", portfolio, "-o", "-", "--config", cfg)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := graph.UnmarshalVisualization([]byte(out)); err != nil {
		t.Errorf("stdout is not a visualization: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir, portfolio, cfg := setup(t)
	base := filepath.Join(dir, "graph")

	if _, err := execute(t, "render", portfolio, "-f", "json,dot", "-o", base, "--config", cfg); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.Contains(string(dot), `"C1" -> "E1"`) {
		t.Errorf("dot output missing C1 -> E1 edge:\n%s", dot)
	}
	if _, err := graph.ReadVisualizationFile(base + ".viz.json"); err != nil {
		t.Errorf("read json: %v", err)
	}

	// Re-render the exported payload without the portfolio.
	if _, err := execute(t, "render", base+".viz.json", "--from-viz", "-f", "dot", "-o", base+"2.dot", "--config", cfg); err != nil {
		t.Fatalf("render --from-viz: %v", err)
	}
	again, err := os.ReadFile(base + "2.dot")
	if err != nil {
		t.Fatalf("read re-rendered dot: %v", err)
	}
	if !bytes.Equal(dot, again) {
		t.Error("re-rendering the exported payload should give the same DOT")
	}
}

func TestDiscoverCommandWritesPortfolio(t *testing.T) {
	dir, portfolio, cfg := setup(t)
	output := filepath.Join(dir, "discovered.json")

	if _, err := execute(t, "discover", portfolio, "-o", output, "--config", cfg); err != nil {
		t.Fatalf("discover: %v", err)
	}
	p, err := assetio.ImportPortfolio(output)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(p.Assets) != 3 {
		t.Errorf("assets = %d, want 3", len(p.Assets))
	}
	if len(p.Relationships) != 1 || p.Relationships[0].Type != relgraph.TypeCommodityExposure {
		t.Errorf("relationships = %v, want one commodity_exposure", p.Relationships)
	}
}

func TestCommandErrors(t *testing.T) {
	dir, _, cfg := setup(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing portfolio", []string{"metrics", filepath.Join(dir, "nope.toml"), "--config", cfg}, errors.ErrCodeFileNotFound},
		{"missing config", []string{"metrics", "x.toml", "--config", filepath.Join(dir, "nope.toml")}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", filepath.Join(dir, "portfolio.toml"), "-f", "pdf", "--config", cfg}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	dir, _, cfg := setup(t)

	out, err := execute(t, "cache", "path", "--config", cfg)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(dir, "cache"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir, _, cfg := setup(t)
	cacheDir := filepath.Join(dir, "cache")
	if err := os.MkdirAll(filepath.Join(cacheDir, "ab"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "ab", "cd.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "cache", "clear", "--config", cfg); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countFiles(cacheDir); n != 0 {
		t.Errorf("files after clear = %d, want 0", n)
	}
}

func TestAssetListModel(t *testing.T) {
	p, err := assetio.ReadPortfolio(strings.NewReader(testPortfolio), assetio.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	g := relgraph.New()
	if err := p.Populate(g); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddRelationship(relgraph.Relationship{
		Source: "C1", Target: "E1", Type: relgraph.TypeCommodityExposure, Strength: 0.9,
	}); err != nil {
		t.Fatal(err)
	}

	m := NewAssetListModel(g)
	press := func(m AssetListModel, key string) AssetListModel {
		t.Helper()
		var msg tea.KeyMsg
		switch key {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		next, _ := m.Update(msg)
		return next.(AssetListModel)
	}

	m = press(m, "down")
	if m.Cursor != 1 {
		t.Fatalf("cursor after down = %d, want 1", m.Cursor)
	}
	view := m.View()
	if !strings.Contains(view, "Crude Oil") || !strings.Contains(view, "commodity_exposure") {
		t.Errorf("detail view of C1 missing name or relationship:\n%s", view)
	}

	m = press(m, "G")
	if m.Cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", m.Cursor)
	}
	m = press(m, "down")
	if m.Cursor != 2 {
		t.Errorf("cursor moved past the last asset: %d", m.Cursor)
	}
	if !strings.Contains(m.View(), "no outgoing relationships") {
		t.Error("currency has no outgoing relationships")
	}

	m = press(m, "g")
	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestAssetListModelWindowSize(t *testing.T) {
	g := relgraph.New()
	m := NewAssetListModel(g)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if got := next.(AssetListModel).Height; got != 5 {
		t.Errorf("height = %d, want 5", got)
	}
	if !strings.Contains(m.View(), "no assets") {
		t.Error("empty model should say no assets")
	}
}

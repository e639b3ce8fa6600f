package workload

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/eugenenazirov/adventure/internal/adventure"
	"github.com/eugenenazirov/adventure/internal/knapsack"
)

func writeWorkload(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write workload: %v", err)
	}
	return path
}

const sampleYAML = `capacity: 5
items:
  - {size: 2, weight: 3}
  - {size: 3, weight: 4}
  - {size: 4, weight: 5}
grains: [5, 3, 8, 1]
crystals:
  - {name: amber, brilliance: 9}
  - {name: jade, brilliance: 3}
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	w, err := Load(writeWorkload(t, "quest.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Capacity != 5 {
		t.Fatalf("expected capacity 5, got %d", w.Capacity)
	}
	wantItems := []knapsack.Item{knapsack.NewItem(2, 3), knapsack.NewItem(3, 4), knapsack.NewItem(4, 5)}
	if got := w.PackItems(); !slices.Equal(got, wantItems) {
		t.Fatalf("expected items %v, got %v", wantItems, got)
	}
	if got := w.SandGrains(); !slices.Equal(got, []adventure.Grain{{Size: 5}, {Size: 3}, {Size: 8}, {Size: 1}}) {
		t.Fatalf("unexpected grains: %v", got)
	}
	wantCrystals := []adventure.Crystal{{Name: "amber", Brilliance: 9}, {Name: "jade", Brilliance: 3}}
	if got := w.CrystalSet(); !slices.Equal(got, wantCrystals) {
		t.Fatalf("expected crystals %v, got %v", wantCrystals, got)
	}

	container, err := w.Container()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if container.Capacity() != 5 {
		t.Fatalf("expected container capacity 5, got %d", container.Capacity())
	}
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	content := `capacity = 4
grains = [2, 1]

[[items]]
size = 1
weight = 2

[[crystals]]
name = "opal"
brilliance = 4
`
	w, err := Load(writeWorkload(t, "quest.toml", content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Capacity != 4 || len(w.Items) != 1 || len(w.Grains) != 2 || len(w.Crystals) != 1 {
		t.Fatalf("unexpected workload: %+v", w)
	}
}

func TestSandGrainsReturnsCopy(t *testing.T) {
	t.Parallel()

	w := &Workload{Grains: []int{3, 1}}
	grains := w.SandGrains()
	grains[0].Size = 99

	if w.Grains[0] != 3 {
		t.Fatalf("expected workload grains untouched, got %v", w.Grains)
	}
}

func TestLoadRejectsInvalidWorkload(t *testing.T) {
	t.Parallel()

	content := "capacity: -1\nitems:\n  - {size: -2, weight: 1}\n  - {size: 1, weight: 1}\n  - {size: 1, weight: -5}\n"
	_, err := Load(writeWorkload(t, "bad.yaml", content))
	if !errors.Is(err, ErrInvalidWorkload) {
		t.Fatalf("expected ErrInvalidWorkload, got %v", err)
	}
	for _, want := range []string{"capacity", "items[0]", "items[2]"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "items[1]") {
		t.Fatalf("valid item reported as invalid: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if _, err := Load(writeWorkload(t, "quest.yaml", "capacity: 1\ntreasure: 3\n")); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

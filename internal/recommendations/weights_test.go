package recommendations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseWeightsOverlaysDefaults(t *testing.T) {
	w, err := ParseWeights([]byte("hint_category_match: 25\ntop_n: 3\n"))
	if err != nil {
		t.Fatalf("ParseWeights: %v", err)
	}
	if w.HintCategoryMatch != 25 || w.TopN != 3 {
		t.Fatalf("overrides not applied: %+v", w)
	}
	if w.PreferredTop != 40 || w.KeywordMatch != 3 {
		t.Fatalf("defaults lost: %+v", w)
	}
}

func TestParseWeightsRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero_divisor":   "popularity_divisor: 0\n",
		"zero_top_n":     "top_n: 0\n",
		"floor_over_top": "preferred_floor: 50\n",
		"bad_yaml":       "top_n: [\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseWeights([]byte(raw)); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		})
	}
}

func TestLoadWeights(t *testing.T) {
	w, err := LoadWeights("")
	if err != nil || w != DefaultWeights() {
		t.Fatalf("empty path should return defaults, got %+v %v", w, err)
	}

	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := os.WriteFile(path, []byte("preferred_step: 4\n"), 0o644); err != nil {
		t.Fatalf("write weights: %v", err)
	}
	w, err = LoadWeights(path)
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if w.PreferredStep != 4 {
		t.Fatalf("expected preferred_step 4, got %v", w.PreferredStep)
	}

	if _, err := LoadWeights(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

package sentiment

import (
	"encoding/json"
	"flag"
	"os"
	"testing"

	"github.com/AlexAdowin/Analyse-sentiments/internal/polarity"
)

var updateGolden = flag.Bool("update", false, "regenerate golden test files")

// goldenCase is one review from testdata/reviews.js with its expected
// result under the fr lexicon and the "none" oracle.
type goldenCase struct {
	Name      string  `json:"name"`
	Input     string  `json:"input"`
	WantLabel string  `json:"want_label"`
	WantScore float64 `json:"want_score"`
}

const goldenPath = "../../testdata/golden/sentiment.json"

func TestGolden(t *testing.T) {
	a := newAnalyzer(t, frenchLexicon(t), polarity.Neutral())

	data, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var cases []goldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("parsing golden file: %v", err)
	}

	if *updateGolden {
		for i := range cases {
			got := a.Classify(cases[i].Input)
			cases[i].WantLabel = got.Label.String()
			cases[i].WantScore = got.Score
		}
		out, err := json.MarshalIndent(cases, "", "  ")
		if err != nil {
			t.Fatalf("marshaling golden data: %v", err)
		}
		if err := os.WriteFile(goldenPath, append(out, '\n'), 0644); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		t.Log("golden file updated, review with: git diff testdata/golden/sentiment.json")
		return
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			got := a.Classify(tc.Input)
			if got.Label.String() != tc.WantLabel {
				t.Errorf("label: got %q, want %q (score %.3f)", got.Label, tc.WantLabel, got.Score)
			}
			if !approx(got.Score, tc.WantScore) {
				t.Errorf("score: got %.3f, want %.3f", got.Score, tc.WantScore)
			}
		})
	}
}

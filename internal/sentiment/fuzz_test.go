package sentiment

import (
	"math"
	"testing"

	"github.com/AlexAdowin/Analyse-sentiments/internal/lexicon"
	"github.com/AlexAdowin/Analyse-sentiments/internal/polarity"
)

func FuzzClassify(f *testing.F) {
	f.Add("Excellent produit, je le recommande vivement à tout le monde !")
	f.Add("Le service client était absolument horrible. J'attends toujours une réponse.")
	f.Add("")
	f.Add("pas pas pas mal")
	f.Add("⭐⭐⭐⭐⭐ 😍 🔥")
	f.Add("http://site.com/track pas reçu")
	f.Add("\xff\xfe")

	lex, err := lexicon.LoadBuiltin("fr")
	if err != nil {
		f.Fatalf("LoadBuiltin(fr): %v", err)
	}
	a, err := New(DefaultConfig(), lex, polarity.Neutral())
	if err != nil {
		f.Fatalf("New: %v", err)
	}
	cfg := a.Config()

	f.Fuzz(func(t *testing.T, s string) {
		an := a.Analyze(s)
		r := an.Result

		if !r.Label.Valid() {
			t.Fatalf("invalid label %q for %q", r.Label, s)
		}
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			t.Fatalf("non-finite score %v for %q", r.Score, s)
		}
		if an.Degraded() {
			t.Fatalf("unexpected degraded result for %q: %v", s, an.Err)
		}
		if got := cfg.Label(an.Components.FinalScore); got != r.Label {
			t.Errorf("label %s disagrees with final score %v for %q", r.Label, an.Components.FinalScore, s)
		}
		if math.Abs(r.Score-an.Components.FinalScore) > 0.0005+1e-12 {
			t.Errorf("rounded score %v too far from %v", r.Score, an.Components.FinalScore)
		}
		if again := a.Classify(s); again != r {
			t.Errorf("not deterministic: %s then %s", r, again)
		}
	})
}

package scoring

import "testing"

func TestScoreSumsAnswerValues(t *testing.T) {
	answers := map[string]string{"q1": "3", "q2": "4", "q3": "2"}
	if got := Score(answers); got != 9 {
		t.Fatalf("expected score 9, got %d", got)
	}
}

func TestScoreEmpty(t *testing.T) {
	if got := Score(map[string]string{}); got != 0 {
		t.Fatalf("expected 0 for no answers, got %d", got)
	}
}

func TestBandFor(t *testing.T) {
	cases := []struct {
		score int
		want  Band
	}{
		{90, BandAdvanced},
		{70, BandSolid},
		{40, BandBasic},
		{10, BandUrgent},
		// boundaries map to the higher band
		{85, BandAdvanced},
		{65, BandSolid},
		{35, BandBasic},
		{34, BandUrgent},
		{0, BandUrgent},
	}
	for _, tc := range cases {
		if got := BandFor(tc.score); got != tc.want {
			t.Fatalf("BandFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

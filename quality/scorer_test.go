package quality

import "testing"

func TestRandomScorer_StaysInRange(t *testing.T) {
	s := NewRandomScorer()
	for i := 0; i < 1000; i++ {
		score := s.Score("tesco", "milk")
		if score < 1 || score > MaxScore {
			t.Fatalf("score %d outside 1..%d", score, MaxScore)
		}
	}
}

func TestFixed(t *testing.T) {
	if got := Fixed(4).Score("tesco", "milk"); got != 4 {
		t.Errorf("Fixed(4).Score = %d", got)
	}
}

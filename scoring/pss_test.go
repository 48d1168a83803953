package scoring

import (
	"errors"
	"reflect"
	"testing"
)

func uniformAnswers(value int) []int {
	answers := make([]int, NumQuestions)
	for i := range answers {
		answers[i] = value
	}
	return answers
}

func TestUniformAnswersRawTotals(t *testing.T) {
	// The fixed 6 direct + 4 reversed split means uniform sheets can
	// never reach raw totals of 0 or 40.
	wantRaw := map[int]int{0: 16, 1: 18, 2: 20, 3: 22, 4: 24}

	for answer, want := range wantRaw {
		b, err := Score(uniformAnswers(answer), 0)
		if err != nil {
			t.Fatalf("Score failed for uniform answer %d: %v", answer, err)
		}
		if b.RawPSS != want {
			t.Errorf("uniform answer %d: rawPSS = %d, want %d", answer, b.RawPSS, want)
		}
		if b.RawPSS == 0 || b.RawPSS == 40 {
			t.Errorf("uniform answer %d reached unreachable raw total %d", answer, b.RawPSS)
		}
	}
}

func TestReverseScoring(t *testing.T) {
	for q := 0; q < NumQuestions; q++ {
		for a := MinAnswer; a <= MaxAnswer; a++ {
			answers := uniformAnswers(0)
			answers[q] = a

			b, err := Score(answers, 0)
			if err != nil {
				t.Fatalf("Score failed: %v", err)
			}

			want := a
			if QuestionPolarity(q) == Positive {
				want = MaxAnswer - a
			}
			if b.QuestionScores[q] != want {
				t.Errorf("question %d answer %d scored %d, want %d", q+1, a, b.QuestionScores[q], want)
			}
		}
	}
}

func TestAggregateRanges(t *testing.T) {
	b, err := Score([]int{4, 4, 4, 0, 0, 4, 0, 0, 4, 4}, 0)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if b.NegativeTotal != 24 {
		t.Errorf("negativeTotal = %d, want 24", b.NegativeTotal)
	}
	if b.PositiveTotal != 16 {
		t.Errorf("positiveTotal = %d, want 16", b.PositiveTotal)
	}
	if b.RawPSS != 40 {
		t.Errorf("rawPSS = %d, want 40 for the maximal mixed sheet", b.RawPSS)
	}
	if b.NormalizedPSS != 10.0 {
		t.Errorf("normalizedPSS = %v, want 10.0", b.NormalizedPSS)
	}

	b, err = Score([]int{0, 0, 0, 4, 4, 0, 4, 4, 0, 0}, 0)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if b.RawPSS != 0 {
		t.Errorf("rawPSS = %d, want 0 for the minimal mixed sheet", b.RawPSS)
	}
}

func TestDeterminism(t *testing.T) {
	answers := []int{1, 3, 0, 2, 4, 1, 2, 0, 3, 4}

	first, err := Score(answers, 1.3)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	second, err := Score(answers, 1.3)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different breakdowns:\n%+v\n%+v", first, second)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Level
	}{
		{0.0, LevelLow},
		{3.0, LevelLow},
		{3.0001, LevelModerate},
		{6.0, LevelModerate},
		{6.0001, LevelHigh},
		{8.5, LevelHigh},
		{8.5001, LevelCritical},
		{10.0, LevelCritical},
	}

	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestKnownScenarios(t *testing.T) {
	cases := []struct {
		name       string
		answers    []int
		workload   float64
		rawPSS     int
		normalized float64
		final      float64
		level      Level
	}{
		{"all zeros, no workload", uniformAnswers(0), 0, 16, 4.0, 2.4, LevelLow},
		{"all fours, max workload", uniformAnswers(4), 2, 24, 6.0, 4.4, LevelModerate},
		{"all twos, mid workload", uniformAnswers(2), 1, 20, 5.0, 3.4, LevelModerate},
	}

	for _, tc := range cases {
		b, err := Score(tc.answers, tc.workload)
		if err != nil {
			t.Fatalf("%s: Score failed: %v", tc.name, err)
		}
		if b.RawPSS != tc.rawPSS {
			t.Errorf("%s: rawPSS = %d, want %d", tc.name, b.RawPSS, tc.rawPSS)
		}
		if b.NormalizedPSS != tc.normalized {
			t.Errorf("%s: normalizedPSS = %v, want %v", tc.name, b.NormalizedPSS, tc.normalized)
		}
		if b.FinalScore != tc.final {
			t.Errorf("%s: finalScore = %v, want %v", tc.name, b.FinalScore, tc.final)
		}
		if b.Level != tc.level {
			t.Errorf("%s: level = %q, want %q", tc.name, b.Level, tc.level)
		}
	}
}

func TestNegativeAndPositiveTotals(t *testing.T) {
	b, err := Score(uniformAnswers(0), 0)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if b.NegativeTotal != 0 || b.PositiveTotal != 16 {
		t.Errorf("all zeros: totals = (%d,%d), want (0,16)", b.NegativeTotal, b.PositiveTotal)
	}

	b, err = Score(uniformAnswers(4), 0)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if b.NegativeTotal != 24 || b.PositiveTotal != 0 {
		t.Errorf("all fours: totals = (%d,%d), want (24,0)", b.NegativeTotal, b.PositiveTotal)
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := Score(make([]int, 11), 0); err == nil {
		t.Error("expected error for 11 answers")
	} else {
		var countErr *AnswerCountError
		if !errors.As(err, &countErr) {
			t.Errorf("expected AnswerCountError, got %T", err)
		} else if countErr.Count != 11 {
			t.Errorf("AnswerCountError.Count = %d, want 11", countErr.Count)
		}
	}

	if _, err := Score([]int{}, 0); err == nil {
		t.Error("expected error for empty answers")
	}

	answers := uniformAnswers(0)
	answers[6] = 5
	if _, err := Score(answers, 0); err == nil {
		t.Error("expected error for answer 5")
	} else {
		var valueErr *AnswerValueError
		if !errors.As(err, &valueErr) {
			t.Errorf("expected AnswerValueError, got %T", err)
		} else if valueErr.Index != 6 || valueErr.Value != 5 {
			t.Errorf("AnswerValueError = %+v, want index 6 value 5", valueErr)
		}
	}

	answers[6] = -1
	if _, err := Score(answers, 0); err == nil {
		t.Error("expected error for answer -1")
	}

	for _, workload := range []float64{-0.1, 2.5} {
		if _, err := Score(uniformAnswers(0), workload); err == nil {
			t.Errorf("expected error for workload %v", workload)
		} else {
			var wlErr *WorkloadError
			if !errors.As(err, &wlErr) {
				t.Errorf("expected WorkloadError for %v, got %T", workload, err)
			}
		}
	}
}

func TestWorkloadContribution(t *testing.T) {
	b, err := Score(uniformAnswers(0), 2)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if b.WorkloadContribution != 0.8 {
		t.Errorf("workload contribution = %v, want 0.8 at maximum workload", b.WorkloadContribution)
	}
	if b.FinalScore != 3.2 {
		t.Errorf("finalScore = %v, want 3.2", b.FinalScore)
	}
}

package scoring

import (
	"fmt"
	"math"
)

const (
	// NumQuestions is the number of items on the PSS-10 instrument.
	NumQuestions = 10

	MinAnswer = 0
	MaxAnswer = 4

	MinWorkload = 0.0
	MaxWorkload = 2.0

	maxRawPSS      = NumQuestions * MaxAnswer
	pssWeight      = 0.6
	workloadWeight = 0.4

	// Final scores are rounded to 4 decimal places before classification
	// so identical inputs classify identically on every platform.
	scorePrecision = 1e4
)

// Polarity tags how a question's raw answer contributes to the total.
type Polarity int

const (
	// Negative items score the raw answer directly.
	Negative Polarity = iota
	// Positive items are reverse scored: answer a contributes 4-a.
	Positive
)

// questionPolarity fixes the polarity of each PSS-10 item. Questions
// 4, 5, 7 and 8 are positively worded and reverse scored. Because the
// split is 6 direct + 4 reversed, a uniform answer sheet can never
// reach a raw total of 0 or 40: all-zeros still collects 16 points
// from the reversed items, all-fours forfeits them.
var questionPolarity = [NumQuestions]Polarity{
	Negative, // Q1: something unexpected upset you
	Negative, // Q2: unable to control important things
	Negative, // Q3: felt nervous or stressed
	Positive, // Q4: confident about handling problems
	Positive, // Q5: things were going your way
	Negative, // Q6: could not cope with all the things to do
	Positive, // Q7: able to control irritations
	Positive, // Q8: felt on top of things
	Negative, // Q9: angered by things outside your control
	Negative, // Q10: difficulties piling up too high
}

// QuestionPolarity returns the fixed polarity of the question at index i.
func QuestionPolarity(i int) Polarity {
	return questionPolarity[i]
}

// Level is the classified stress band of a final score.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// levelBands maps final scores to levels. Evaluated in order; each
// band's upper bound is inclusive, anything above the last band is
// critical.
var levelBands = []struct {
	upper float64
	level Level
}{
	{3.0, LevelLow},
	{6.0, LevelModerate},
	{8.5, LevelHigh},
}

// Breakdown holds every intermediate of a scored assessment. It is a
// pure function of the inputs and is never mutated after Score returns.
type Breakdown struct {
	QuestionScores       [NumQuestions]int `bson:"questionScores" json:"questionScores"`
	NegativeTotal        int               `bson:"negativeTotal" json:"negativeTotal"`
	PositiveTotal        int               `bson:"positiveTotal" json:"positiveTotal"`
	RawPSS               int               `bson:"rawPss" json:"rawPss"`
	NormalizedPSS        float64           `bson:"normalizedPss" json:"normalizedPss"`
	Workload             float64           `bson:"workload" json:"workload"`
	WorkloadContribution float64           `bson:"workloadContribution" json:"workloadContribution"`
	FinalScore           float64           `bson:"finalScore" json:"finalScore"`
	Level                Level             `bson:"level" json:"level"`
}

// AnswerCountError reports a response sheet with the wrong number of answers.
type AnswerCountError struct {
	Count int
}

func (e *AnswerCountError) Error() string {
	return fmt.Sprintf("expected %d answers, got %d", NumQuestions, e.Count)
}

// AnswerValueError reports an answer outside the 0-4 scale.
type AnswerValueError struct {
	Index int
	Value int
}

func (e *AnswerValueError) Error() string {
	return fmt.Sprintf("answer %d for question %d out of range [%d,%d]", e.Value, e.Index+1, MinAnswer, MaxAnswer)
}

// WorkloadError reports a workload stress value outside [0,2].
type WorkloadError struct {
	Value float64
}

func (e *WorkloadError) Error() string {
	return fmt.Sprintf("workload stress %v out of range [%v,%v]", e.Value, MinWorkload, MaxWorkload)
}

// Score validates a PSS-10 response sheet plus a workload stress signal
// and produces the full breakdown. No partial result is ever returned:
// validation failures abort before any arithmetic.
func Score(answers []int, workload float64) (*Breakdown, error) {
	if len(answers) != NumQuestions {
		return nil, &AnswerCountError{Count: len(answers)}
	}
	for i, a := range answers {
		if a < MinAnswer || a > MaxAnswer {
			return nil, &AnswerValueError{Index: i, Value: a}
		}
	}
	if math.IsNaN(workload) || workload < MinWorkload || workload > MaxWorkload {
		return nil, &WorkloadError{Value: workload}
	}

	var b Breakdown
	b.Workload = workload

	for i, a := range answers {
		score := a
		if questionPolarity[i] == Positive {
			score = MaxAnswer - a
			b.PositiveTotal += score
		} else {
			b.NegativeTotal += score
		}
		b.QuestionScores[i] = score
	}

	b.RawPSS = b.NegativeTotal + b.PositiveTotal
	b.NormalizedPSS = float64(b.RawPSS) / maxRawPSS * 10
	b.WorkloadContribution = roundScore(workload * workloadWeight)
	b.FinalScore = roundScore(b.NormalizedPSS*pssWeight + workload*workloadWeight)
	b.Level = Classify(b.FinalScore)

	return &b, nil
}

// Classify maps a final score onto its stress level. Band upper bounds
// are inclusive: 3.0 is still low, 6.0 still moderate, 8.5 still high.
func Classify(score float64) Level {
	for _, band := range levelBands {
		if score <= band.upper {
			return band.level
		}
	}
	return LevelCritical
}

func roundScore(v float64) float64 {
	return math.Round(v*scorePrecision) / scorePrecision
}

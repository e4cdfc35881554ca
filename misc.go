package perceptron

import (
	"math"
)

// CorrectRound returns whether or not every output, rounded to the nearest integer, equals its
// target. It is the default IsCorrect for TrainArgs.
//
// assumes len(outs) == len(targets)
func CorrectRound(outs, targets []float64) bool {
	for i := range outs {
		if math.Round(outs[i]) != targets[i] {
			return false
		}
	}

	return true
}

// CorrectHighest returns whether or not the largest value in each is at the same index. It is
// suited to one-hot classification targets.
func CorrectHighest(outs, targets []float64) bool {
	return Argmax(outs) == Argmax(targets)
}

// Argmax returns the index of the largest value, or -1 if the slice is empty. Ties go to the
// lowest index.
func Argmax(values []float64) int {
	if len(values) == 0 {
		return -1
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}

	return best
}

// OneHot returns a vector of the given size with a 1 at index and 0 elsewhere.
func OneHot(index, size int) []float64 {
	v := make([]float64, size)
	if index >= 0 && index < size {
		v[index] = 1
	}

	return v
}

// Every returns a function that satisfies TrainArgs.ShouldTest, returning true on every epoch that
// is a multiple of frequency.
//
// this function is self-explanatory from viewing the source
func Every(frequency int) func(int) bool {
	return func(epoch int) bool {
		return frequency > 0 && epoch%frequency == 0
	}
}

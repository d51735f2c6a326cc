package quiz

import (
	"math/rand/v2"
	"sort"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// Source supplies uniform random integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Shuffle returns a uniformly permuted copy of in. The input is left as is.
func Shuffle[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Permutation returns a shuffled [0, n).
func Permutation(src Source, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Shuffle(src, idx)
}

// indexOf returns the position of v in order, or -1.
func indexOf(order []int, v int) int {
	for pos, x := range order {
		if x == v {
			return pos
		}
	}
	return -1
}

// remapIndexes moves every original index in answers to its position in
// order. Indexes that do not occur in order are returned in dropped; the
// mapped result is sorted ascending.
func remapIndexes(order []int, answers []int) (mapped, dropped []int) {
	mapped = make([]int, 0, len(answers))
	for _, a := range answers {
		pos := indexOf(order, a)
		if pos < 0 {
			dropped = append(dropped, a)
			continue
		}
		mapped = append(mapped, pos)
	}
	sort.Ints(mapped)
	return mapped, dropped
}

// permuteOptions applies a fresh option order to q, remapping its answer
// indexes. It reports any answer indexes that could not be mapped.
func permuteOptions(src Source, q Question) (out Question, dropped []int) {
	order := Permutation(src, len(q.Options))
	options := make([]string, len(order))
	for pos, orig := range order {
		options[pos] = q.Options[orig]
	}

	out = Question{Kind: q.Kind, Text: q.Text, Options: options}
	if q.Kind == model.KindMultiple {
		out.AnswerIndexes, dropped = remapIndexes(order, q.AnswerIndexes)
		return out, dropped
	}

	out.AnswerIndex = indexOf(order, q.AnswerIndex)
	if out.AnswerIndex < 0 {
		dropped = []int{q.AnswerIndex}
	}
	return out, dropped
}

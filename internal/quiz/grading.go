package quiz

import "github.com/Mooujj/quiz-hub/internal/model"

// IsAnswered reports whether r counts as an answer. An empty set is
// unanswered; any non-null single index, including 0, is answered.
func IsAnswered(r model.Response) bool {
	if r.IsMulti() {
		return len(r.Indexes()) > 0
	}
	return !r.IsNull()
}

// IsCorrect grades r against the canonical answer of q.
func IsCorrect(q Question, r model.Response) bool {
	switch q.Kind {
	case model.KindMultiple:
		if !r.IsMulti() {
			return false
		}
		return sameSet(q.AnswerIndexes, r.Indexes())

	case model.KindSingle, model.KindTrueFalse:
		i, ok := r.Single()
		return ok && i == q.AnswerIndex

	default:
		return false
	}
}

// CorrectResponse returns the canonical answer of q as a Response.
func (q Question) CorrectResponse() model.Response {
	if q.Kind == model.KindMultiple {
		return model.MultiResponse(q.AnswerIndexes...)
	}
	return model.SingleResponse(q.AnswerIndex)
}

// EmptyResponse is the reset value of an answer to q.
func (q Question) EmptyResponse() model.Response {
	if q.Kind == model.KindMultiple {
		return model.MultiResponse()
	}
	return model.NoResponse()
}

func sameSet(want, got []int) bool {
	a := make(map[int]struct{}, len(want))
	for _, v := range want {
		a[v] = struct{}{}
	}
	u := make(map[int]struct{}, len(got))
	for _, v := range got {
		u[v] = struct{}{}
	}
	if len(a) != len(u) {
		return false
	}
	for k := range a {
		if _, ok := u[k]; !ok {
			return false
		}
	}
	return true
}

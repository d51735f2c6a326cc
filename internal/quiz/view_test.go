package quiz

import (
	"testing"

	"github.com/Mooujj/quiz-hub/internal/model"
)

func TestRenderFirstQuestion(t *testing.T) {
	s := newTestEngine().Start(threeQuestionQuiz())
	v := Render(s)

	if v.Total != 3 || v.Index != 0 || v.Progress != 0 {
		t.Errorf("position = %d/%d progress %v", v.Index, v.Total, v.Progress)
	}
	if v.Question == nil || v.Question.Text != "2 + 2?" || v.Question.Hint != "Choose one option." {
		t.Fatalf("question = %+v", v.Question)
	}
	want := Controls{Next: true, Check: true}
	if v.Controls != want {
		t.Errorf("controls = %+v, want %+v", v.Controls, want)
	}
	for _, o := range v.Question.Options {
		if o.Selected || o.State != OptionPlain {
			t.Errorf("option %d = %+v", o.Index, o)
		}
	}
}

func TestRenderHighlightsAfterCheck(t *testing.T) {
	s := newTestEngine().Start(threeQuestionQuiz())
	s.Index = 1
	if err := s.Check(model.MultiResponse(0, 1)); err != nil {
		t.Fatalf("Check: %v", err)
	}

	v := Render(s)
	if v.Question.Hint != "Select all that apply." || !v.Question.Locked {
		t.Errorf("question = %+v", v.Question)
	}
	states := []OptionState{OptionCorrect, OptionIncorrect, OptionPlain, OptionPlain}
	for i, o := range v.Question.Options {
		if o.State != states[i] {
			t.Errorf("option %d state = %q, want %q", i, o.State, states[i])
		}
	}

	if err := s.RevealSolution(); err != nil {
		t.Fatalf("RevealSolution: %v", err)
	}
	v = Render(s)
	if v.Question.Options[2].State != OptionSolution {
		t.Errorf("revealed option state = %q", v.Question.Options[2].State)
	}
	if !v.Controls.Previous || !v.Controls.Next || v.Controls.Check {
		t.Errorf("controls = %+v", v.Controls)
	}
	if v.Progress != 1.0/3.0 {
		t.Errorf("progress = %v", v.Progress)
	}
}

func TestRenderCompleted(t *testing.T) {
	s := newTestEngine().Start(threeQuestionQuiz())
	s.Answers[0] = model.SingleResponse(1)
	s.Answers[1] = model.MultiResponse(0, 2)
	s.Answers[2] = model.SingleResponse(0)
	if _, err := s.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	v := Render(s)
	if v.Question != nil || v.Result == nil {
		t.Fatalf("completed view = %+v", v)
	}
	if v.Result.CorrectCount != 3 || v.Result.Percentage != 100 {
		t.Errorf("result = %+v", v.Result)
	}
	if !v.Controls.RetryQuiz {
		t.Errorf("retry quiz not offered")
	}
}

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/quiz"
)

const helpLine = "[1-9] select  c check  s solution  r retry  n next  p prev  f finish  q quit"

type command struct {
	event quiz.Event
	quit  bool
}

// parseCommand turns one input line into an engine event. Numbers select
// options; for multi-select questions they toggle against the current
// selection.
func parseCommand(line string, v quiz.View) (command, error) {
	current := currentSelection(v)

	switch strings.ToLower(line) {
	case "q", "quit":
		return command{quit: true}, nil
	case "c", "check":
		return command{event: quiz.Event{Action: quiz.ActionCheck, Response: current}}, nil
	case "s", "solution":
		return command{event: quiz.Event{Action: quiz.ActionShowSolution}}, nil
	case "r", "retry":
		return command{event: quiz.Event{Action: quiz.ActionRetryQuestion}}, nil
	case "n", "next":
		return command{event: quiz.Event{Action: quiz.ActionNext, Response: current}}, nil
	case "p", "prev", "previous":
		return command{event: quiz.Event{Action: quiz.ActionPrevious}}, nil
	case "f", "finish":
		return command{event: quiz.Event{Action: quiz.ActionFinish}}, nil
	case "":
		return command{}, errors.New(helpLine)
	}

	if v.Question == nil {
		return command{}, errors.New(helpLine)
	}

	var picks []int
	for _, field := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(v.Question.Options) {
			return command{}, fmt.Errorf("unknown input %q\n%s", field, helpLine)
		}
		picks = append(picks, n-1)
	}

	if v.Question.Kind != model.KindMultiple {
		if len(picks) != 1 {
			return command{}, errors.New("pick exactly one option")
		}
		return command{event: quiz.Event{Action: quiz.ActionSelect, Response: model.SingleResponse(picks[0])}}, nil
	}

	selected := make(map[int]bool)
	for _, i := range current.Indexes() {
		selected[i] = true
	}
	for _, i := range picks {
		selected[i] = !selected[i]
	}
	var indexes []int
	for i := range v.Question.Options {
		if selected[i] {
			indexes = append(indexes, i)
		}
	}
	return command{event: quiz.Event{Action: quiz.ActionSelect, Response: model.MultiResponse(indexes...)}}, nil
}

func currentSelection(v quiz.View) model.Response {
	if v.Question == nil {
		return model.NoResponse()
	}
	var indexes []int
	for _, o := range v.Question.Options {
		if o.Selected {
			indexes = append(indexes, o.Index)
		}
	}
	if v.Question.Kind == model.KindMultiple {
		return model.MultiResponse(indexes...)
	}
	if len(indexes) == 0 {
		return model.NoResponse()
	}
	return model.SingleResponse(indexes[0])
}

// renderBoard draws the current screen as plain text.
func renderBoard(v quiz.View, width int) string {
	var b strings.Builder
	rule := strings.Repeat("─", width)

	fmt.Fprintln(&b, rule)
	if v.Status == quiz.StatusCompleted && v.Result != nil {
		writeResult(&b, *v.Result)
		fmt.Fprintln(&b, rule)
		return b.String()
	}

	fmt.Fprintf(&b, "%s  ·  question %d of %d  ·  %d%%\n", v.Title, v.Index+1, v.Total, int(v.Progress*100))
	fmt.Fprintln(&b, rule)
	if q := v.Question; q != nil {
		fmt.Fprintln(&b, q.Text)
		fmt.Fprintf(&b, "(%s)\n\n", q.Hint)
		for _, o := range q.Options {
			fmt.Fprintf(&b, " %s %d. %s%s\n", mark(q.Kind, o.Selected), o.Index+1, o.Text, optionSuffix(o.State))
		}
		if s := stateLine(q.State); s != "" {
			fmt.Fprintf(&b, "\n%s\n", s)
		}
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, controlsLine(v.Controls))
	return b.String()
}

func writeResult(b *strings.Builder, r quiz.Result) {
	fmt.Fprintf(b, "%s finished: %d / %d correct (%d%%)\n\n", r.Title, r.CorrectCount, r.Total, r.Percentage)
	for i, item := range r.Questions {
		verdict := "✗"
		if item.Correct {
			verdict = "✓"
		}
		fmt.Fprintf(b, "%s %d. %s\n", verdict, i+1, item.Text)
		answer := strings.Join(item.UserAnswer, ", ")
		if item.NoAnswer {
			answer = "no answer"
		}
		fmt.Fprintf(b, "     yours:   %s\n", answer)
		fmt.Fprintf(b, "     correct: %s\n", strings.Join(item.CorrectAnswer, ", "))
	}
}

func mark(kind model.QuestionKind, selected bool) string {
	switch {
	case kind == model.KindMultiple && selected:
		return "[x]"
	case kind == model.KindMultiple:
		return "[ ]"
	case selected:
		return "(•)"
	default:
		return "( )"
	}
}

func optionSuffix(st quiz.OptionState) string {
	switch st {
	case quiz.OptionCorrect:
		return "  ✓"
	case quiz.OptionIncorrect:
		return "  ✗"
	case quiz.OptionSolution:
		return "  ← correct answer"
	}
	return ""
}

func stateLine(st quiz.QuestionState) string {
	switch st {
	case quiz.StateCorrect:
		return "Correct!"
	case quiz.StateIncorrect:
		return "Not quite. Press s to see the solution or r to try again."
	case quiz.StateSolved:
		return "Solution shown. Press r to try again."
	}
	return ""
}

func controlsLine(c quiz.Controls) string {
	var parts []string
	add := func(on bool, label string) {
		if on {
			parts = append(parts, label)
		}
	}
	add(c.Check, "c check")
	add(c.ShowSolution, "s solution")
	add(c.RetryQuestion, "r retry")
	add(c.Previous, "p prev")
	add(c.Next, "n next")
	add(c.Finish, "f finish")
	parts = append(parts, "q quit")
	return strings.Join(parts, "  ")
}

// describe turns an engine rejection into a user-facing line.
func describe(err error) string {
	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		return "Please select an answer."
	case errors.Is(err, quiz.ErrQuestionLocked):
		return "This question is already checked. Press r to try again."
	case errors.Is(err, quiz.ErrNotAllAnswered):
		return "Answer every question before finishing."
	case errors.Is(err, quiz.ErrActionUnavailable):
		return "That action is not available right now."
	}
	return err.Error()
}

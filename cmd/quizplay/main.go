package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Mooujj/quiz-hub/internal/catalog"
	"github.com/Mooujj/quiz-hub/internal/config"
	"github.com/Mooujj/quiz-hub/internal/logger"
	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/validator"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	var quizID string
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Catalog JSON file (forces the file source)")
	flag.StringVar(&quizID, "quiz", "", "Quiz id to play; prompts when empty")
	flag.Parse()
	if isFlagSet("catalog") {
		cfg.CatalogSource = config.CatalogSourceFile
	}

	// Logs go to stderr so they never interleave with the board.
	log := logger.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	// ─── Load Quiz Catalog ─────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), cfg.CatalogTimeout)
	loader, closeFn, err := catalog.LoaderFromConfig(ctx, cfg, log)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to configure catalog")
	}
	cat, err := catalog.Load(ctx, loader)
	closeFn()
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Quiz catalog unavailable")
	}
	if cat.Len() == 0 {
		fmt.Println("The catalog has no quizzes.")
		return
	}

	// ─── Terminal Setup ────────────────────────────────────────────────
	p := &player{engine: quiz.NewEngine(log), width: boardWidth()}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to enter raw mode")
		}
		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, "")
		p.in = termReader{t: t}
		p.out = t

		code := run(p, cat, quizID)
		_ = term.Restore(fd, state)
		os.Exit(code)
	}

	p.in = plainReader{r: bufio.NewReader(os.Stdin)}
	p.out = os.Stdout
	os.Exit(run(p, cat, quizID))
}

func run(p *player, cat *catalog.Catalog, quizID string) int {
	def, err := p.pickQuiz(cat, quizID)
	if err != nil {
		fmt.Fprintln(p.out, err)
		return 1
	}
	p.play(def)
	return 0
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// boardWidth is the terminal width, capped for readability.
func boardWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 72
	}
	return min(w, 100)
}

type lineReader interface {
	ReadLine(prompt string) (string, error)
}

// termReader edits lines on a raw-mode terminal.
type termReader struct {
	t *term.Terminal
}

func (r termReader) ReadLine(prompt string) (string, error) {
	r.t.SetPrompt(prompt)
	return r.t.ReadLine()
}

// plainReader reads piped input; prompts are not echoed.
type plainReader struct {
	r *bufio.Reader
}

func (r plainReader) ReadLine(string) (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

type player struct {
	in     lineReader
	out    io.Writer
	engine *quiz.Engine
	width  int
}

func (p *player) readLine(prompt string) (string, bool) {
	line, err := p.in.ReadLine(prompt)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (p *player) pickQuiz(cat *catalog.Catalog, id string) (model.QuizDefinition, error) {
	if id != "" {
		return cat.Find(id)
	}

	list := cat.List()
	fmt.Fprintln(p.out, "=== Quizzes ===")
	for i, q := range list {
		fmt.Fprintf(p.out, "%3d. %s (%d questions)\n", i+1, q.Title, q.QuestionCount)
		if q.Description != "" {
			fmt.Fprintf(p.out, "     %s\n", q.Description)
		}
	}

	for {
		line, ok := p.readLine("Pick a quiz: ")
		if !ok {
			return model.QuizDefinition{}, fmt.Errorf("no quiz selected")
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(list) {
			fmt.Fprintf(p.out, "Enter a number between 1 and %d.\n", len(list))
			continue
		}
		return cat.Find(list[n-1].ID)
	}
}

func (p *player) play(def model.QuizDefinition) {
	sess := p.engine.Start(def)
	for {
		view := quiz.Render(sess)
		fmt.Fprint(p.out, renderBoard(view, p.width))

		if view.Status == quiz.StatusCompleted {
			line, ok := p.readLine("Play again? [y/N] ")
			if !ok || !strings.EqualFold(line, "y") {
				return
			}
			sess = p.engine.Start(def)
			continue
		}

		line, ok := p.readLine("> ")
		if !ok {
			return
		}
		cmd, err := parseCommand(line, view)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		if cmd.quit {
			return
		}
		if _, err := p.engine.Apply(sess, cmd.event); err != nil {
			fmt.Fprintln(p.out, describe(err))
		}
	}
}

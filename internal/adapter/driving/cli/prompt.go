// Package cli implements the interactive terminal session that collects a
// review and submits it.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ericfisherdev/bookreview/internal/domain/model"
	"github.com/ericfisherdev/bookreview/internal/domain/port/driven"
)

// Terminal text.
const (
	PromptRating  = "Enter rating (1-5): "
	PromptComment = "Enter comment: "
	PromptDate    = "Enter review date (YYYY-MM-DD): "
	PromptRepeat  = "Do you want to rate again? (yes/no): "

	MsgWelcome       = "Welcome to the review update system."
	MsgInvalidRating = "Invalid rating. Rating must be a number between 1 and 5."
	MsgInvalidDate   = "Invalid date format. Please enter date in YYYY-MM-DD format."
	MsgGoodbye       = "Goodbye!"
)

// ErrSessionHalted is returned by Run when a submitted review could not be
// written. No further prompts are shown after it.
var ErrSessionHalted = errors.New("review session halted")

// ReviewUpdater validates and persists a single review.
type ReviewUpdater interface {
	UpdateReview(ctx context.Context, review model.Review) (driven.ExecResult, error)
}

type state int

const (
	stateAskRating state = iota
	stateAskComment
	stateAskDate
	stateSubmit
	stateAskRepeat
)

// PromptLoop owns one interactive session: the terminal streams, the updater
// and the answers collected for the round in progress.
type PromptLoop struct {
	reader   *LineReader
	out      io.Writer
	errColor *color.Color
	updater  ReviewUpdater
	logger   *slog.Logger

	rating  int
	comment string
	date    time.Time
}

// NewPromptLoop creates a session reading answers from in and writing prompts to out.
func NewPromptLoop(in io.Reader, out io.Writer, updater ReviewUpdater, logger *slog.Logger) *PromptLoop {
	if logger == nil {
		logger = slog.Default()
	}

	errColor := color.New(color.FgRed)
	if !isTerminal(out) {
		errColor.DisableColor()
	}

	return &PromptLoop{
		reader:   NewLineReader(in, out),
		out:      out,
		errColor: errColor,
		updater:  updater,
		logger:   logger,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Run drives rating, comment, date, submit and repeat rounds until the user
// declines another round, input ends or ctx is cancelled; all three return nil.
// A failed update returns ErrSessionHalted wrapping the cause.
//
// A malformed date restarts the round from the rating question rather than
// re-asking only the date.
func (p *PromptLoop) Run(ctx context.Context) error {
	defer p.reader.Close()

	fmt.Fprintln(p.out, MsgWelcome)

	st := stateAskRating
	for {
		if ctx.Err() != nil {
			return nil
		}

		switch st {
		case stateAskRating:
			line, err := p.reader.Ask(ctx, PromptRating)
			if err != nil {
				return p.inputEnded(err)
			}
			rating, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || !model.ValidRating(rating) {
				p.errColor.Fprintln(p.out, MsgInvalidRating)
				continue
			}
			p.rating = rating
			st = stateAskComment

		case stateAskComment:
			line, err := p.reader.Ask(ctx, PromptComment)
			if err != nil {
				return p.inputEnded(err)
			}
			p.comment = line
			st = stateAskDate

		case stateAskDate:
			line, err := p.reader.Ask(ctx, PromptDate)
			if err != nil {
				return p.inputEnded(err)
			}
			date, err := model.ParseReviewDate(line)
			if err != nil {
				p.errColor.Fprintln(p.out, MsgInvalidDate)
				st = stateAskRating
				continue
			}
			p.date = date
			st = stateSubmit

		case stateSubmit:
			review := model.Review{
				ID:         model.FixedReviewID,
				Rating:     p.rating,
				Comment:    p.comment,
				ReviewDate: p.date,
			}
			if _, err := p.updater.UpdateReview(ctx, review); err != nil {
				return fmt.Errorf("%w: %w", ErrSessionHalted, err)
			}
			st = stateAskRepeat

		case stateAskRepeat:
			answer, err := p.reader.Ask(ctx, PromptRepeat)
			if err != nil {
				return p.inputEnded(err)
			}
			if !strings.EqualFold(answer, "yes") {
				fmt.Fprintln(p.out, MsgGoodbye)
				return nil
			}
			st = stateAskRating
		}
	}
}

// inputEnded maps the end of input or a cancelled context to a clean exit.
func (p *PromptLoop) inputEnded(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		p.logger.Debug("input closed", "reason", err)
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, MsgGoodbye)
		return nil
	}
	return fmt.Errorf("read input: %w", err)
}

package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
	"github.com/Arhosseini77/olmocr-parse/internal/core/ports"
)

// Runner builds and executes the olmocr pipeline command for one processing
// unit: <program> <baseArgs...> <workspacePath> <inputFlag> <inputs...>.
type Runner struct {
	cmd       ports.CommandRunner
	program   string
	baseArgs  []string
	inputFlag string
	timeout   time.Duration
	log       *slog.Logger
}

func NewRunner(
	cmd ports.CommandRunner,
	program string,
	baseArgs []string,
	inputFlag string,
	timeout time.Duration,
	log *slog.Logger,
) *Runner {
	return &Runner{
		cmd:       cmd,
		program:   program,
		baseArgs:  baseArgs,
		inputFlag: inputFlag,
		timeout:   timeout,
		log:       log,
	}
}

// Run invokes the pipeline synchronously. ok is true iff the process exited
// zero. A nonzero exit is not an error: the captured stderr is returned so
// the caller can decide how to log it. A process that cannot be started at
// all is an error and aborts the run upstream.
func (r *Runner) Run(ctx context.Context, workspacePath string, inputs []string) (bool, string, error) {
	if len(inputs) == 0 {
		return false, "", domain.WrapError(domain.ErrPipeline, "run pipeline", errors.New("no input files"))
	}

	args := slices.Clone(r.baseArgs)
	args = append(args, workspacePath, r.inputFlag)
	args = append(args, inputs...)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.log.Info("running ocr pipeline", "command", r.program+" "+strings.Join(args, " "))
	code, _, stderr, err := r.cmd.Run(ctx, r.program, args...)
	if err != nil {
		return false, stderr, domain.WrapError(domain.ErrPipeline, "start pipeline", err)
	}
	if code != 0 {
		return false, stderr, nil
	}

	r.log.Info("ocr pipeline finished", "files", len(inputs))
	return true, stderr, nil
}

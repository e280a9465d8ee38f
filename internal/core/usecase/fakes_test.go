package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type workspaceFake struct {
	path       string
	resetCalls int
	purgeCalls int
	resetErr   error
	purgeErr   error
}

func (w *workspaceFake) Reset() error {
	w.resetCalls++
	return w.resetErr
}

func (w *workspaceFake) PurgeResults() error {
	w.purgeCalls++
	return w.purgeErr
}

func (w *workspaceFake) Path() string { return w.path }

func (w *workspaceFake) ResultsPath() string { return filepath.Join(w.path, "results") }

type scannerFake struct {
	dirs       []string
	files      map[string][]string
	listErr    error
	listCalls  []string
	preflights [][]string
}

func (s *scannerFake) ListEligible(dir string) ([]string, error) {
	s.listCalls = append(s.listCalls, dir)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.files[dir], nil
}

func (s *scannerFake) HasEligible(dir string) (bool, error) {
	files, err := s.ListEligible(dir)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

func (s *scannerFake) Walk(_ string, fn func(dir string) error) error {
	for _, d := range s.dirs {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *scannerFake) Preflight(files []string) {
	s.preflights = append(s.preflights, files)
}

type pipelineResult struct {
	ok     bool
	stderr string
	err    error
}

type pipelineFake struct {
	results []pipelineResult
	calls   [][]string
}

func (p *pipelineFake) Run(_ context.Context, _ string, inputs []string) (bool, string, error) {
	p.calls = append(p.calls, inputs)
	if len(p.results) == 0 {
		return true, "", nil
	}
	r := p.results[0]
	p.results = p.results[1:]
	return r.ok, r.stderr, r.err
}

type convertCall struct {
	resultsDir string
	destDir    string
}

type converterFake struct {
	calls []convertCall
	stats domain.ConvertStats
	err   error
}

func (c *converterFake) Convert(resultsDir, destDir string) (domain.ConvertStats, error) {
	c.calls = append(c.calls, convertCall{resultsDir: resultsDir, destDir: destDir})
	if c.err != nil {
		return domain.ConvertStats{}, c.err
	}
	return c.stats, nil
}

type recorderFake struct {
	outcomes     []domain.UnitOutcome
	records      int
	decodeErrors int
}

func (r *recorderFake) ObserveUnit(outcome domain.UnitOutcome, _ float64) {
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recorderFake) AddRecords(n int) { r.records += n }

func (r *recorderFake) AddDecodeErrors(n int) { r.decodeErrors += n }

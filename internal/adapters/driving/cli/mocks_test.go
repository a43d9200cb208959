package cli

import (
	"context"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

// stubOutputService returns fixed results and records the last request.
type stubOutputService struct {
	summary string
	full    *domain.FullOutput
	nb      *domain.Notebook
	err     error

	path string
	hint domain.TypeHint
}

func (s *stubOutputService) Summarize(_ context.Context, path string) (string, error) {
	s.path = path
	return s.summary, s.err
}

func (s *stubOutputService) GetFullOutput(
	_ context.Context,
	path string,
	_, _ int,
	hint domain.TypeHint,
) (*domain.FullOutput, error) {
	s.path, s.hint = path, hint
	return s.full, s.err
}

func (s *stubOutputService) Load(_ context.Context, path string) (*domain.Notebook, error) {
	s.path = path
	return s.nb, s.err
}

// failingSettings fails every call.
type failingSettings struct{}

func (failingSettings) Get() (*domain.Settings, error) {
	return nil, domain.ErrIO
}

func (failingSettings) Set(_, _ string) error {
	return domain.ErrIO
}

func (failingSettings) Keys() []string {
	return nil
}

package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
)

var _ driving.PathResolver = (*PathPolicy)(nil)

// PathPolicy resolves caller-supplied notebook paths.
// With a root configured, paths must stay inside that directory tree.
type PathPolicy struct {
	root string
}

// NewPathPolicy creates a policy. An empty root allows any path.
func NewPathPolicy(root string) *PathPolicy {
	return &PathPolicy{root: root}
}

// Root returns the configured root, or "" when unrestricted.
func (p *PathPolicy) Root() string {
	if p == nil {
		return ""
	}
	return p.root
}

// Resolve cleans path and checks it against the root.
// Relative paths are resolved against the root when one is set.
func (p *PathPolicy) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: notebook path is empty", domain.ErrInvalidInput)
	}

	root := p.Root()
	if root == "" {
		return filepath.Clean(path), nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving notebook root: %w", err)
	}

	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(absRoot, candidate)
	}
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the notebook root %s", domain.ErrInvalidInput, path, absRoot)
	}
	return candidate, nil
}

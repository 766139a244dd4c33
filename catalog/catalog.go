// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound           = errors.New("candidate not found")
	ErrEmptyCatalog       = errors.New("catalog has no candidates")
	ErrEmptyName          = errors.New("candidate name is empty")
	ErrDuplicateCandidate = errors.New("duplicate candidate name")
)

// Candidate is a named option a voter may select.
type Candidate struct {
	Name      string `yaml:"name" json:"name"`
	DisplayID string `yaml:"display_id" json:"display_id"`
	AuthToken string `yaml:"auth_token" json:"-"`
}

// Resolver maps a candidate name to its authorization token.
type Resolver interface {
	Resolve(name string) (string, error)
}

// Catalog is the fixed set of known candidates. It is built once at
// startup and never modified afterwards; every accessor returns a copy.
type Catalog struct {
	candidates []Candidate
	index      map[string]int
}

// New validates candidates and returns a catalog preserving their order.
func New(candidates []Candidate) (*Catalog, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		candidates: make([]Candidate, len(candidates)),
		index:      make(map[string]int, len(candidates)),
	}
	for i, cand := range candidates {
		if cand.Name == "" {
			return nil, fmt.Errorf("candidate %d: %w", i, ErrEmptyName)
		}
		if _, dup := c.index[cand.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCandidate, cand.Name)
		}
		c.candidates[i] = cand
		c.index[cand.Name] = i
	}

	return c, nil
}

// Default returns the built-in three candidate catalog.
func Default() *Catalog {
	c, err := New([]Candidate{
		{Name: "Alice", DisplayID: "candidate-1", AuthToken: "Vote for Alice"},
		{Name: "Bob", DisplayID: "candidate-2", AuthToken: "Vote for Bob"},
		{Name: "Carol", DisplayID: "candidate-3", AuthToken: "Vote for Carol"},
	})
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}

// LoadFile reads a YAML catalog of the form:
//
//	candidates:
//	  - name: Alice
//	    display_id: candidate-1
//	    auth_token: Vote for Alice
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file struct {
		Candidates []Candidate `yaml:"candidates"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return New(file.Candidates)
}

// Len returns the number of candidates.
func (c *Catalog) Len() int {
	return len(c.candidates)
}

// Names returns candidate names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.candidates))
	for i, cand := range c.candidates {
		names[i] = cand.Name
	}
	return names
}

// Tokens returns authorization tokens parallel to Names.
func (c *Catalog) Tokens() []string {
	tokens := make([]string, len(c.candidates))
	for i, cand := range c.candidates {
		tokens[i] = cand.AuthToken
	}
	return tokens
}

// Candidates returns a copy of the catalog in order.
func (c *Catalog) Candidates() []Candidate {
	out := make([]Candidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// Lookup returns the candidate registered under name.
func (c *Catalog) Lookup(name string) (Candidate, error) {
	i, ok := c.index[name]
	if !ok {
		return Candidate{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c.candidates[i], nil
}

// TokenFor returns the authorization token for name.
func (c *Catalog) TokenFor(name string) (string, error) {
	cand, err := c.Lookup(name)
	if err != nil {
		return "", err
	}
	return cand.AuthToken, nil
}

// Resolve implements Resolver. The match is exact: no trimming or case folding.
func (c *Catalog) Resolve(name string) (string, error) {
	return c.TokenFor(name)
}

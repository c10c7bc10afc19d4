// Package scenario loads and replays scripted pager sessions.
//
// A scenario is a YAML file:
//
//	version: v1
//	pages: [inbox, drafts, sent, archive, spam]
//	extra: [trash]
//	initial: 0
//	steps:
//	  - swipe: -1
//	  - settle: true
//	  - show: true
//	  - move: {from: 5, to: 0}
//	  - teardown: true
//
// Each step is applied to a pagertest.PagerTester.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the scenario format major version this build reads.
const SupportedMajor = "v1"

// Scenario is a scripted pager session.
type Scenario struct {
	Version string   `yaml:"version"`
	Pages   []string `yaml:"pages"`
	Extra   []string `yaml:"extra,omitempty"`
	Initial int      `yaml:"initial,omitempty"`
	Steps   []Step   `yaml:"steps"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Swipe    *int  `yaml:"swipe,omitempty"`
	Settle   bool  `yaml:"settle,omitempty"`
	Jump     *int  `yaml:"jump,omitempty"`
	Show     bool  `yaml:"show,omitempty"`
	Hide     bool  `yaml:"hide,omitempty"`
	Move     *Move `yaml:"move,omitempty"`
	Teardown bool  `yaml:"teardown,omitempty"`
}

// Move reorders the visible pages.
type Move struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// ErrEmptyStep is returned for a step with no action.
var ErrEmptyStep = errors.New("step has no action")

// String returns the step as it would be written in a scenario.
func (s Step) String() string {
	switch {
	case s.Swipe != nil:
		return fmt.Sprintf("swipe %+d", *s.Swipe)
	case s.Settle:
		return "settle"
	case s.Jump != nil:
		return fmt.Sprintf("jump %d", *s.Jump)
	case s.Show:
		return "show"
	case s.Hide:
		return "hide"
	case s.Move != nil:
		return fmt.Sprintf("move %d->%d", s.Move.From, s.Move.To)
	case s.Teardown:
		return "teardown"
	default:
		return "empty"
	}
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Swipe != nil, s.Settle, s.Jump != nil, s.Show, s.Hide, s.Move != nil, s.Teardown} {
		if set {
			n++
		}
	}
	return n
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scenario")
		}
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the version, the page titles and every step.
func (s *Scenario) Validate() error {
	if !semver.IsValid(s.Version) {
		return fmt.Errorf("invalid version %q (want %s)", s.Version, SupportedMajor)
	}
	if major := semver.Major(s.Version); major != SupportedMajor {
		return fmt.Errorf("unsupported version %s (want %s)", major, SupportedMajor)
	}

	seen := make(map[string]bool)
	for _, title := range slices.Concat(s.Pages, s.Extra) {
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("page titles must not be empty")
		}
		if seen[title] {
			return fmt.Errorf("duplicate page %q", title)
		}
		seen[title] = true
	}
	if s.Initial < 0 || (len(s.Pages) > 0 && s.Initial >= len(s.Pages)) {
		return fmt.Errorf("initial page %d out of range", s.Initial)
	}

	for i, step := range s.Steps {
		switch step.actions() {
		case 0:
			return fmt.Errorf("step %d: %w", i+1, ErrEmptyStep)
		case 1:
		default:
			return fmt.Errorf("step %d: more than one action", i+1)
		}
	}
	return nil
}

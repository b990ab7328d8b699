// Package resolver locates a server executable under an operator-supplied
// directory and runs an update command against the directory containing it.
// The whole operation is retried with a fresh prompt until it succeeds or
// the attempt budget is spent.
package resolver

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/pkg/errors"
)

const DefaultMaxAttempts = 3

type State int

const (
	StateSearching State = iota
	StateFound
	StateExhaustedRetries
)

var ErrAttemptsExhausted = errors.New("maximum attempts reached")

type NotFoundError struct {
	Root string
}

func (e NotFoundError) Error() string {
	return "target not found under root '" + e.Root + "'"
}

// Sink receives one message per failed attempt.
type Sink interface {
	Append(message string) error
}

type Resolver struct {
	// Target is the exact file name to search for.
	Target string

	// MaxAttempts bounds the retry loop. Zero means DefaultMaxAttempts.
	MaxAttempts int

	// Prompt solicits a search root from the operator. Called once per attempt.
	Prompt func(ctx context.Context) (string, error)

	// Search returns the path of the first entry named target under root,
	// or an empty string when there is no match.
	Search func(ctx context.Context, root string, target string) (string, error)

	// Update runs the external update command against the install directory.
	Update func(ctx context.Context, installDir string) error

	// Log is the failure sink. Optional.
	Log Sink
}

// iteration carries the loop state for a single pass. A fresh value is
// built on every attempt instead of mutating shared variables.
type iteration struct {
	attempt int
	lastErr error
}

// Run executes the resolve/update loop and returns the derived install
// directory on success. It returns ErrAttemptsExhausted after the attempt
// budget is spent.
func (r *Resolver) Run(ctx context.Context) (string, error) {
	maxAttempts := r.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	it := iteration{}
	state := StateSearching
	installDir := ""

	for state == StateSearching {
		it = iteration{attempt: it.attempt + 1}

		root, err := r.Prompt(ctx)
		if err != nil {
			return "", errors.WithMessage(err, "failed to read search root")
		}

		found, err := r.Search(ctx, root, r.Target)
		if err != nil || found == "" {
			// A search failure is not distinguished from a genuine
			// absence of the target. Both are retried the same way.
			it.lastErr = NotFoundError{Root: root}
		}

		state = nextState(it, maxAttempts)

		if it.lastErr != nil {
			r.logFailure(it.lastErr)
		} else {
			installDir = filepath.Dir(found)
		}
	}

	if state == StateExhaustedRetries {
		return "", ErrAttemptsExhausted
	}

	err := r.Update(ctx, installDir)
	if err != nil {
		return "", errors.WithMessage(err, "failed to run update command")
	}

	return installDir, nil
}

// nextState is the single transition of the loop state machine.
func nextState(it iteration, maxAttempts int) State {
	if it.lastErr == nil {
		return StateFound
	}

	if it.attempt >= maxAttempts {
		return StateExhaustedRetries
	}

	return StateSearching
}

func (r *Resolver) logFailure(err error) {
	if r.Log == nil {
		return
	}

	logErr := r.Log.Append(err.Error())
	if logErr != nil {
		log.Println(errors.WithMessage(logErr, "failed to append error log"))
	}
}

// SearchTree walks the tree rooted at root and returns the first entry
// whose name equals target, in filepath.WalkDir order. The order is
// whatever the underlying filesystem yields when several matches exist.
// Unreadable entries are skipped, so an I/O failure surfaces as no match.
func SearchTree(_ context.Context, root string, target string) (string, error) {
	found := ""

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}
		if d.IsDir() {
			return nil
		}

		if d.Name() == target {
			found = path

			return fs.SkipAll
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return found, nil
}

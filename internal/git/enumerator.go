package git

import (
	"context"
	"fmt"
)

// Backend identifies an Enumerator implementation.
type Backend string

const (
	BackendIndex Backend = "index"
	BackendCLI   Backend = "cli"
)

// Enumerator lists tracked documentation files of one repository.
type Enumerator interface {
	// Root is the absolute path of the working tree.
	Root() string
	// List returns matching tracked paths, relative to Root and slash-separated,
	// in index order.
	List(ctx context.Context) ([]string, error)
}

// Open locates the repository containing start and returns an Enumerator for backend.
func Open(ctx context.Context, backend Backend, start string, matcher *Matcher) (Enumerator, error) {
	switch backend {
	case BackendIndex, "":
		e, err := OpenIndex(start, matcher)
		if err != nil {
			return nil, err
		}
		return e, nil
	case BackendCLI:
		e, err := OpenCLI(ctx, start, matcher)
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown enumeration backend %q", backend)
	}
}

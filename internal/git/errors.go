package git

import (
	stderrors "errors"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
)

// classifyOpenError maps repository discovery failures to fatal git errors.
func classifyOpenError(err error, start string) error {
	message := "open repository"
	if stderrors.Is(err, git.ErrRepositoryNotExists) {
		message = "not inside a git repository"
	}
	return errors.WrapError(err, errors.CategoryGit, message).
		Fatal().
		WithContext("start", start).
		Build()
}

func listError(err error, root, backend string) error {
	return errors.WrapError(err, errors.CategoryGit, "list tracked files").
		Fatal().
		WithContext("root", root).
		WithContext("backend", backend).
		Build()
}

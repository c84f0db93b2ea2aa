package history

import (
	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
)

func storageError(err error, message string) error {
	return ferrors.WrapError(err, ferrors.CategoryStorage, message).Build()
}

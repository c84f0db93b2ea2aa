package commands

import (
	"context"
	"os/signal"
	"syscall"

	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	CheckFlags
}

// Run checks once. Broken links are reported on stdout and returned as
// ErrBrokenLinks so the process exits with status 1.
func (c *CheckCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunCheck(ctx, g, root, &c.CheckFlags)
}

func RunCheck(ctx context.Context, g *Global, root *CLI, flags *CheckFlags) error {
	s, err := openSession(ctx, g, root, flags, flags.overrides(root))
	if err != nil {
		return err
	}
	defer s.close()

	rep, err := s.run(ctx)
	if err != nil {
		return err
	}
	if rep.HasBroken() {
		return ferrors.ErrBrokenLinks
	}
	return nil
}

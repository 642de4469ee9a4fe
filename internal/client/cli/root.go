package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	u := a.session.User()
	if !u.IsAuthenticated() {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Name)
}

// Root greets the user and runs the REPL. Commands are read from the same
// reader as form prompts.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to IgniteGym CLI (type 'help' for commands)")
	if u := a.session.User(); u.IsAuthenticated() {
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Name)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

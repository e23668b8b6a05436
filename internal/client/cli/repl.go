package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUnknownCommand = errors.New("unknown command")

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	takePendingRoute() (string, bool)
	enterRoute(ctx context.Context, route string)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	Verify(ctx context.Context) error
	Portal(ctx context.Context, cmd string, args []string) error
}

// runREPL starts a simple read–eval–print loop.
//
// Before every prompt it renders the route the gateway navigated to, if any,
// so an authorization failure during the previous command lands the user on
// the sign-in prompt. The loop exits on EOF, on ctx cancellation, or when
// the user types "exit" or "quit".
//
// Commands
//
//	Always:
//	  - help, exit | quit
//	  - register, login, forgot, reset, whoami
//
//	Signed in:
//	  - logout, verify, me
//	  - associations, association <id>, newassoc, join <id>
//	  - posts <assoc>, post <assoc>, comment <post>
//	  - polls <assoc>, newpoll <assoc>, vote <poll> <option>
//	  - events <assoc>, newevent <assoc>, participate <event>
//	  - inbox, messages <user>, send <user>
//
// Errors returned by command handlers are reported by the handlers
// themselves; the loop only keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		if route, ok := a.takePendingRoute(); ok {
			a.enterRoute(ctx, route)
		}

		fmt.Fprintf(w, "ap %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: whoami, me, verify, logout, associations, association, newassoc, join, "+
					"posts, post, comment, polls, newpoll, vote, events, newevent, participate, inbox, messages, send, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, forgot, reset, whoami, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			if err := a.Portal(ctx, cmd, args); errors.Is(err, errUnknownCommand) {
				fmt.Fprintln(w, "Unknown command:", cmd)
			}
		}
	}
}

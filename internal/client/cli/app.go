package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/config"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
)

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage error")

const usage = `usage: gatectl [-a addr] [-t seconds] [-c config.json] <command>

commands:
  ping                      check that the server answers
  signin [username]         sign in and print the token
  signout <token>           terminate a token
  verify <token> <action>   check whether the token may perform an action
  ttl <token>               print the remaining lifetime of a token
`

// Client is the server API gatectl drives.
type Client interface {
	SignIn(ctx context.Context, userName, password string) (string, error)
	SignOut(ctx context.Context) error
	VerifyToken(ctx context.Context, actionID int64) error
	TokenTTL(ctx context.Context) (time.Duration, error)
	Ping(ctx context.Context) error
	SetAccessToken(token string)
}

type App struct {
	config *config.Config
	client Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, api Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: api, reader: bufio.NewReader(in), out: out}
}

// Run executes one command. The returned error already carries a
// human-readable reason.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	cmd, args := args[0], args[1:]
	switch cmd {
	case "ping":
		if err := a.client.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "OK")
		return nil
	case "signin":
		return a.signIn(ctx, args)
	case "signout":
		if err := a.useToken(args, 1); err != nil {
			return err
		}
		if err := a.client.SignOut(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "signed out")
		return nil
	case "verify":
		if err := a.useToken(args, 2); err != nil {
			return err
		}
		action, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: action must be an integer", ErrUsage)
		}
		if err := a.client.VerifyToken(ctx, action); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "confirmed")
		return nil
	case "ttl":
		if err := a.useToken(args, 1); err != nil {
			return err
		}
		left, err := a.client.TokenTTL(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, left.Round(time.Millisecond))
		return nil
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	}

	fmt.Fprint(a.out, usage)
	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

func (a *App) signIn(ctx context.Context, args []string) error {
	var userName string
	if len(args) > 0 {
		userName = args[0]
	} else {
		var err error
		userName, err = GetSimpleText(a.reader, "-Enter username", a.out)
		if err != nil {
			return err
		}
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.client.SignIn(ctx, userName, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) useToken(args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: expected %d argument(s)", ErrUsage, want)
	}
	a.client.SetAccessToken(args[0])
	return nil
}

var _ Client = (*client.GRPCClient)(nil)

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/magabrotheeeer/payment-dashboard/internal/apiclient"
	"github.com/magabrotheeeer/payment-dashboard/internal/app/dashboard"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

var (
	errUsage          = errors.New("usage")
	errSessionExpired = errors.New("session expired, run: dashboard login --email <email>")
)

// forbiddenMessage тело 401, которым бэкенд отвечает на нехватку роли.
// Остальные 401 означают недействительный токен.
const forbiddenMessage = "Forbidden"

const usage = `Usage: dashboard <command> [flags]

Commands:
  login    [--email E] [--password P]   authenticate and save the session
  logout                                clear the saved session
  whoami                                show the current session
  payments [flags]                      list payments (requires login)
  review   <id>                         mark a payment as reviewed
  open     <path>                       show where navigation to path lands
`

type cli struct {
	app          *dashboard.App
	out          io.Writer
	errOut       io.Writer
	readPassword func() (string, error)
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: command is required", errUsage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		c.app.Session.Logout(ctx)
		fmt.Fprintln(c.out, "Logged out")
		return nil
	case "whoami":
		return c.whoami()
	case "payments":
		return c.payments(ctx, rest)
	case "review":
		return c.review(ctx, rest)
	case "open":
		return c.open(rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func newFlagSet(name string, errOut io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(errOut)
	return fs
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", c.errOut)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *email == "" && fs.NArg() > 0 {
		*email = fs.Arg(0)
	}
	if *email == "" {
		return fmt.Errorf("%w: --email is required", errUsage)
	}

	if *password == "" {
		p, err := c.readPassword()
		if err != nil {
			return err
		}
		*password = p
	}

	if err := c.app.Session.Login(ctx, *email, *password); err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return errors.New("invalid email or password")
		}
		return err
	}
	s := c.app.Session.Snapshot()
	fmt.Fprintf(c.out, "Logged in as %s (%s)\n", s.Email, s.Role)
	return nil
}

func (c *cli) whoami() error {
	s := c.app.Session.Snapshot()
	if !s.Authenticated() {
		fmt.Fprintln(c.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(c.out, "Email: %s\nRole:  %s\n", s.Email, s.Role)

	claims, err := jwt.Decode(s.Token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time
	state := "valid"
	if time.Now().After(exp) {
		state = "expired"
	}
	fmt.Fprintf(c.out, "Token: %s until %s\n", state, exp.Local().Format(time.RFC3339))
	return nil
}

func (c *cli) payments(ctx context.Context, args []string) error {
	fs := newFlagSet("payments", c.errOut)
	page := fs.Int("page", 0, "page number (server default when 0)")
	size := fs.Int("size", 0, "page size (server default when 0)")
	status := fs.String("status", "", "completed|processing|failed")
	search := fs.String("search", "", "payment id substring")
	sortBy := fs.String("sort-by", "", "date|amount")
	orderBy := fs.String("order-by", "", "asc|desc")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	params := models.NewListParams()
	if *page > 0 {
		params.Page(*page)
	}
	if *size > 0 {
		params.Size(*size)
	}
	if *status != "" {
		params.Status(*status)
	}
	if *search != "" {
		params.Search(*search)
	}
	if *sortBy != "" {
		params.SortBy(*sortBy)
	}
	if *orderBy != "" {
		params.OrderBy(*orderBy)
	}

	list, err := c.app.Dashboard(ctx, params)
	if errors.Is(err, dashboard.ErrLoginRequired) {
		return errors.New("not logged in, run: dashboard login --email <email>")
	}
	if apiclient.IsStatus(err, http.StatusUnauthorized) {
		return errSessionExpired
	}
	if err != nil {
		return err
	}
	renderPayments(c.out, list, c.app.Session.Role().CanReview())
	return nil
}

func (c *cli) review(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: review takes exactly one payment id", errUsage)
	}
	if !c.app.Session.Authenticated() {
		return errors.New("not logged in, run: dashboard login --email <email>")
	}

	err := c.app.Payments.Review(ctx, args[0])
	switch {
	case apiclient.IsStatus(err, http.StatusNotFound):
		return fmt.Errorf("payment %s not found", args[0])
	case isForbidden(err):
		return fmt.Errorf("role %q is not allowed to review payments", c.app.Session.Role())
	case apiclient.IsStatus(err, http.StatusUnauthorized):
		return errSessionExpired
	case err != nil:
		return err
	}
	fmt.Fprintf(c.out, "Payment %s marked as reviewed\n", args[0])
	return nil
}

func isForbidden(err error) bool {
	var se *apiclient.StatusError
	return errors.As(err, &se) && se.Code == http.StatusUnauthorized && se.Message == forbiddenMessage
}

func (c *cli) open(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: open takes exactly one path", errUsage)
	}
	route, err := c.app.Router.Navigate(args[0])
	if err != nil {
		return err
	}
	if route.Path != args[0] {
		fmt.Fprintf(c.out, "%s -> %s\n", args[0], route.Path)
		return nil
	}
	fmt.Fprintln(c.out, route.Path)
	return nil
}

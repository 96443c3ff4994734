// Command dashboard клиент дашборда платежей для службы поддержки.
//
// Сессия (token, role, email) сохраняется между запусками в хранилище,
// выбранном в конфиге: файл, redis или память.
//
//	dashboard login --email jane-operational@durianpay.id
//	dashboard payments --status failed --sort-by amount --order-by asc
//	dashboard review <payment-id>
//	dashboard logout
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/magabrotheeeer/payment-dashboard/internal/app/dashboard"
	"github.com/magabrotheeeer/payment-dashboard/internal/config"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := dashboard.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}
	defer app.Close()

	c := &cli{
		app:          app,
		out:          os.Stdout,
		errOut:       os.Stderr,
		readPassword: promptPassword,
	}
	if err := c.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// promptPassword читает пароль с терминала без эха, а при перенаправленном
// stdin берёт первую строку.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

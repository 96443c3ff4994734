// Package navigation содержит таблицу маршрутов дашборда и охранник переходов:
// неаутентифицированного пользователя с защищённых маршрутов отправляют на /login.
package navigation

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
)

// Пути маршрутов.
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

const maxRedirects = 10

var (
	// ErrRouteNotFound возвращается для пути вне таблицы маршрутов.
	ErrRouteNotFound = errors.New("route not found")
	// ErrRedirectLoop возвращается, если переадресации зациклились.
	ErrRedirectLoop = errors.New("redirect loop")
)

// Route маршрут. Redirect — статическая переадресация; RequiresAuth — нужен токен.
type Route struct {
	Path         string
	Redirect     string
	RequiresAuth bool
}

// Decision решение охранника. Пустой Redirect означает переход к цели без изменений.
type Decision struct {
	Redirect string
}

// Proceed сообщает, разрешён ли переход.
func (d Decision) Proceed() bool {
	return d.Redirect == ""
}

// Guard чистая функция от метаданных цели и наличия токена.
func Guard(to Route, hasToken bool) Decision {
	if to.RequiresAuth && !hasToken {
		return Decision{Redirect: PathLogin}
	}
	return Decision{}
}

// DefaultRoutes таблица маршрутов дашборда.
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathRoot, Redirect: PathLogin},
		{Path: PathLogin},
		{Path: PathDashboard, RequiresAuth: true},
	}
}

// TokenSource отдаёт токен текущей сессии.
type TokenSource interface {
	Token() string
}

// Router разрешает переходы по таблице маршрутов, запуская Guard перед каждым.
type Router struct {
	routes map[string]Route
	tokens TokenSource
	log    *slog.Logger
}

// NewRouter проверяет таблицу: пути уникальны, цели переадресаций существуют,
// маршрут входа есть и публичен.
func NewRouter(routes []Route, tokens TokenSource, log *slog.Logger) (*Router, error) {
	const op = "navigation.NewRouter"

	table := make(map[string]Route, len(routes))
	for _, r := range routes {
		if _, dup := table[r.Path]; dup {
			return nil, fmt.Errorf("%s: duplicate route %q", op, r.Path)
		}
		table[r.Path] = r
	}
	for _, r := range routes {
		if r.Redirect == "" {
			continue
		}
		if _, ok := table[r.Redirect]; !ok {
			return nil, fmt.Errorf("%s: route %q redirects to unknown %q", op, r.Path, r.Redirect)
		}
	}
	login, ok := table[PathLogin]
	if !ok || login.RequiresAuth {
		return nil, fmt.Errorf("%s: %s must exist and be public", op, PathLogin)
	}

	return &Router{routes: table, tokens: tokens, log: log}, nil
}

// Navigate разрешает путь в конечный маршрут с учётом переадресаций и охранника.
func (r *Router) Navigate(path string) (Route, error) {
	const op = "navigation.Navigate"
	log := r.log.With(sl.Op(op), slog.String("to", path))

	current := path
	for range maxRedirects {
		route, ok := r.routes[current]
		if !ok {
			return Route{}, fmt.Errorf("%s: %w: %s", op, ErrRouteNotFound, current)
		}
		if route.Redirect != "" {
			current = route.Redirect
			continue
		}

		decision := Guard(route, r.tokens.Token() != "")
		if !decision.Proceed() {
			log.Debug("navigation redirected", slog.String("from", route.Path), slog.String("redirect", decision.Redirect))
			current = decision.Redirect
			continue
		}
		return route, nil
	}
	return Route{}, fmt.Errorf("%s: %w: %s", op, ErrRedirectLoop, path)
}

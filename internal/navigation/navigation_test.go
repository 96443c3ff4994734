package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestGuard(t *testing.T) {
	protected := Route{Path: PathDashboard, RequiresAuth: true}
	public := Route{Path: PathLogin}

	tests := []struct {
		name     string
		to       Route
		hasToken bool
		want     Decision
	}{
		{name: "protected without token", to: protected, hasToken: false, want: Decision{Redirect: PathLogin}},
		{name: "protected with token", to: protected, hasToken: true, want: Decision{}},
		{name: "public without token", to: public, hasToken: false, want: Decision{}},
		{name: "public with token", to: public, hasToken: true, want: Decision{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Guard(tt.to, tt.hasToken)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Redirect == "", got.Proceed())
		})
	}
}

func TestRouter_Navigate(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		token string
		want  string
	}{
		{name: "root redirects to login", path: PathRoot, want: PathLogin},
		{name: "root with token still goes to login", path: PathRoot, token: "t", want: PathLogin},
		{name: "login is public", path: PathLogin, want: PathLogin},
		{name: "dashboard without token", path: PathDashboard, want: PathLogin},
		{name: "dashboard with token", path: PathDashboard, token: "t", want: PathDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRouter(DefaultRoutes(), staticToken(tt.token), sl.Discard())
			require.NoError(t, err)

			got, err := r.Navigate(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Path)
		})
	}
}

func TestRouter_NavigateUnknown(t *testing.T) {
	r, err := NewRouter(DefaultRoutes(), staticToken(""), sl.Discard())
	require.NoError(t, err)

	_, err = r.Navigate("/settings")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRouter_RedirectLoop(t *testing.T) {
	routes := []Route{
		{Path: PathLogin},
		{Path: "/a", Redirect: "/b"},
		{Path: "/b", Redirect: "/a"},
	}
	r, err := NewRouter(routes, staticToken(""), sl.Discard())
	require.NoError(t, err)

	_, err = r.Navigate("/a")
	assert.ErrorIs(t, err, ErrRedirectLoop)
}

func TestNewRouter_Validation(t *testing.T) {
	_, err := NewRouter([]Route{{Path: PathLogin}, {Path: PathLogin}}, staticToken(""), sl.Discard())
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewRouter([]Route{{Path: PathLogin}, {Path: "/", Redirect: "/nowhere"}}, staticToken(""), sl.Discard())
	assert.ErrorContains(t, err, "unknown")

	_, err = NewRouter([]Route{{Path: PathDashboard, RequiresAuth: true}}, staticToken(""), sl.Discard())
	assert.Error(t, err)

	_, err = NewRouter([]Route{{Path: PathLogin, RequiresAuth: true}}, staticToken(""), sl.Discard())
	assert.Error(t, err)
}

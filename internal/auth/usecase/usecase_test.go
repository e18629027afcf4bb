package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github-agent/internal/auth"
	pkgLog "github-agent/pkg/log"
)

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad_verification_code"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"gho_new","token_type":"bearer","scope":"repo,delete_repo,read:user"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newUseCase(srv *httptest.Server) auth.UseCase {
	return New(pkgLog.NewNop(), Config{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8000/auth/github/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/login/oauth/authorize",
			TokenURL:  srv.URL + "/login/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		HTTPClient: srv.Client(),
	})
}

func TestAuthorizeURL(t *testing.T) {
	srv := newTokenServer(t)
	uc := newUseCase(srv)

	out, err := uc.AuthorizeURL(context.Background(), auth.AuthorizeInput{RedirectURI: "http://app/cb"})
	require.NoError(t, err)
	require.Len(t, out.State, 32)

	u, err := url.Parse(out.URL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "http://app/cb", q.Get("redirect_uri"))
	assert.Equal(t, "repo delete_repo read:user", q.Get("scope"))
	assert.Equal(t, out.State, q.Get("state"))
	assert.True(t, strings.HasPrefix(out.URL, srv.URL+"/login/oauth/authorize"))
}

func TestExchange(t *testing.T) {
	srv := newTokenServer(t)
	uc := newUseCase(srv)
	ctx := context.Background()

	start, err := uc.AuthorizeURL(ctx, auth.AuthorizeInput{})
	require.NoError(t, err)

	out, err := uc.Exchange(ctx, auth.ExchangeInput{Code: "good-code", State: start.State})
	require.NoError(t, err)
	assert.Equal(t, "gho_new", out.AccessToken)
	assert.Equal(t, "repo,delete_repo,read:user", out.Scope)

	// A state is single use.
	_, err = uc.Exchange(ctx, auth.ExchangeInput{Code: "good-code", State: start.State})
	assert.ErrorIs(t, err, auth.ErrInvalidState)
}

func TestExchange_Failures(t *testing.T) {
	srv := newTokenServer(t)
	ctx := context.Background()

	t.Run("unknown state", func(t *testing.T) {
		_, err := newUseCase(srv).Exchange(ctx, auth.ExchangeInput{Code: "good-code", State: "nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidState)
	})

	t.Run("missing code", func(t *testing.T) {
		_, err := newUseCase(srv).Exchange(ctx, auth.ExchangeInput{State: "x"})
		assert.ErrorIs(t, err, auth.ErrMissingCode)
	})

	t.Run("rejected code", func(t *testing.T) {
		uc := newUseCase(srv)
		start, err := uc.AuthorizeURL(ctx, auth.AuthorizeInput{})
		require.NoError(t, err)
		_, err = uc.Exchange(ctx, auth.ExchangeInput{Code: "bad", State: start.State})
		assert.ErrorIs(t, err, auth.ErrExchangeFailed)
	})

	t.Run("not configured", func(t *testing.T) {
		uc := New(pkgLog.NewNop(), Config{})
		_, err := uc.AuthorizeURL(ctx, auth.AuthorizeInput{})
		assert.ErrorIs(t, err, auth.ErrNotConfigured)
		_, err = uc.Exchange(ctx, auth.ExchangeInput{Code: "c", State: "s"})
		assert.ErrorIs(t, err, auth.ErrNotConfigured)
	})
}

package mediawiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is one decoded API call seen by the fake wiki.
type recordedRequest struct {
	Method string
	Params url.Values
}

// fakeWiki records every API call and dispatches on the action
// parameter through the reply function.
type fakeWiki struct {
	srv      *httptest.Server
	requests []recordedRequest
	reply    func(params url.Values) string
}

func newFakeWiki(t *testing.T, reply func(params url.Values) string) *fakeWiki {
	t.Helper()
	f := &fakeWiki{reply: reply}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params url.Values
		if r.Method == http.MethodPost {
			require.NoError(t, r.ParseForm())
			params = r.PostForm
		} else {
			params = r.URL.Query()
			assert.Equal(t, "1", params.Get("maxlag"), "GET without maxlag")
		}
		assert.Equal(t, "json", params.Get("format"))

		f.requests = append(f.requests, recordedRequest{Method: r.Method, Params: params})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.reply(params)))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

// session returns a Session pointed at the fake wiki with test-friendly
// pacing.
func (f *fakeWiki) session(opts ...Option) *Session {
	opts = append([]Option{
		WithRequestRate(10000),
		WithBackoff(time.Millisecond),
	}, opts...)
	return New(f.srv.URL+"/%s/api.php", "fr", opts...)
}

// standardReply implements the token and login actions most tests need.
func standardReply(params url.Values) string {
	switch {
	case params.Get("action") == "query" && params.Get("meta") == "tokens" && params.Get("type") == "login":
		return `{"query":{"tokens":{"logintoken":"LT+\\"}}}`
	case params.Get("action") == "query" && params.Get("meta") == "tokens":
		return `{"query":{"tokens":{"csrftoken":"CT+\\"}}}`
	case params.Get("action") == "login":
		if params.Get("lgpassword") == "secret" {
			return `{"login":{"result":"Success"}}`
		}
		return `{"login":{"result":"Failed","reason":"Incorrect username or password entered."}}`
	case params.Get("action") == "logout":
		return `{}`
	default:
		return `{}`
	}
}

func TestLoginHandshake(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session(WithCredential(Credential{Name: "Bot", Password: "secret"}))

	require.NoError(t, s.Login(context.Background()))
	assert.True(t, s.Authenticated())

	require.Len(t, wiki.requests, 2)
	assert.Equal(t, http.MethodGet, wiki.requests[0].Method)
	assert.Equal(t, "login", wiki.requests[0].Params.Get("type"))
	assert.Equal(t, http.MethodPost, wiki.requests[1].Method)
	assert.Equal(t, "Bot", wiki.requests[1].Params.Get("lgname"))
	assert.Equal(t, `LT+\`, wiki.requests[1].Params.Get("lgtoken"))
}

func TestLoginIdempotent(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session(WithCredential(Credential{Name: "Bot", Password: "secret"}))

	require.NoError(t, s.Login(context.Background()))
	require.NoError(t, s.Login(context.Background()))
	assert.Len(t, wiki.requests, 2, "second login must be a no-op")
}

func TestLoginBadCredentials(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session(WithCredential(Credential{Name: "Bot", Password: "wrong"}))

	err := s.Login(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect username or password entered.", authErr.Reason)
	assert.False(t, s.Authenticated())
}

func TestLoginWithoutCredential(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session()

	err := s.Login(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Empty(t, wiki.requests, "no request without a credential")
}

func TestCsrfTokenCached(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session()

	tok, err := s.CsrfToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `CT+\`, tok)

	again, err := s.CsrfToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tok, again)
	assert.Len(t, wiki.requests, 1, "cached token must not refetch")
}

func TestSetBotForcesFullHandshake(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session(WithCredential(Credential{Name: "Bot", Password: "secret"}))

	ctx := context.Background()
	require.NoError(t, s.Login(ctx))
	_, err := s.CsrfToken(ctx)
	require.NoError(t, err)

	s.SetBot(ctx, Credential{Name: "Other", Password: "secret"})
	assert.False(t, s.Authenticated())

	before := len(wiki.requests)
	require.NoError(t, s.Login(ctx))

	handshake := wiki.requests[before:]
	require.Len(t, handshake, 2, "full handshake after bot change")
	assert.Equal(t, "login", handshake[0].Params.Get("type"))
	assert.Equal(t, "Other", handshake[1].Params.Get("lgname"))

	// The old csrf token must never be reused under the new identity.
	_, err = s.CsrfToken(ctx)
	require.NoError(t, err)
	last := wiki.requests[len(wiki.requests)-1]
	assert.Equal(t, "tokens", last.Params.Get("meta"), "csrf token refetched after bot change")
}

func TestSetLangSwitchesEndpoint(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session()

	s.SetLang(context.Background(), "en")
	assert.Equal(t, "en", s.Lang())
	assert.False(t, s.Authenticated())
}

func TestLogoutClearsStateEvenOnServerError(t *testing.T) {
	wiki := newFakeWiki(t, func(params url.Values) string {
		if params.Get("action") == "logout" {
			return `{"error":{"code":"assertuserfailed","info":"session gone"}}`
		}
		return standardReply(params)
	})
	s := wiki.session(WithCredential(Credential{Name: "Bot", Password: "secret"}))

	ctx := context.Background()
	require.NoError(t, s.Login(ctx))

	err := s.Logout(ctx)
	assert.Error(t, err)
	assert.False(t, s.Authenticated(), "local state cleared despite server error")
}

func TestLogoutNotAuthenticatedIsNoop(t *testing.T) {
	wiki := newFakeWiki(t, standardReply)
	s := wiki.session()

	require.NoError(t, s.Logout(context.Background()))
	assert.Empty(t, wiki.requests)
}

func TestTransportErrorOnConnectionFailure(t *testing.T) {
	s := New("http://127.0.0.1:1/%s/api.php", "fr", WithRequestRate(10000),
		WithCredential(Credential{Name: "Bot", Password: "secret"}))

	err := s.Login(context.Background())
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

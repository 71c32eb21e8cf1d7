// Package mediawiki implements the authenticated MediaWiki API client
// the bot runs on: session lifecycle, cursor-based list queries, batched
// content fetches and rate-limited edit/delete mutations.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// maxLag is attached to every GET so the bot yields to replication
	// lag, per the MediaWiki etiquette guidelines.
	maxLag = "1"

	requestTimeout = 30 * time.Second
)

// Credential identifies a registered bot account.
type Credential struct {
	Name     string
	Password string
}

// Session owns one authenticated connection to a single-language wiki.
// All requests share one http.Client with a cookie jar, so server-side
// session continuity holds across calls. Sessions are not safe for
// concurrent use; the bot is strictly sequential.
type Session struct {
	endpointTpl string // printf template with one %s for the language
	lang        string
	endpoint    string

	cred   *Credential
	csrf   string
	logged bool

	client  *http.Client
	limiter *rate.Limiter
	backoff time.Duration
	log     zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithCredential sets the bot account used for login.
func WithCredential(c Credential) Option {
	return func(s *Session) { s.cred = &c }
}

// WithLogger sets the session logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithBackoff sets the wait before the single rate-limit retry.
func WithBackoff(d time.Duration) Option {
	return func(s *Session) { s.backoff = d }
}

// WithRequestRate caps outgoing requests per second.
func WithRequestRate(rps float64) Option {
	return func(s *Session) { s.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// New creates a session for the given language. endpointTpl must contain
// one %s placeholder for the language code, e.g.
// "https://%s-wiki.metin2.gameforge.com/api.php".
func New(endpointTpl, lang string, opts ...Option) *Session {
	s := &Session{
		endpointTpl: endpointTpl,
		lang:        lang,
		endpoint:    fmt.Sprintf(endpointTpl, lang),
		limiter:     rate.NewLimiter(rate.Limit(10), 1),
		backoff:     5 * time.Second,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = newClient()
	return s
}

func newClient() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{Jar: jar, Timeout: requestTimeout}
}

// Lang returns the session's current language code.
func (s *Session) Lang() string { return s.lang }

// Authenticated reports whether the session holds a logged-in identity.
func (s *Session) Authenticated() bool { return s.logged }

// SetLang tears the current session down and switches to a new language
// wiki. The csrf token and login state never survive a language change.
func (s *Session) SetLang(ctx context.Context, lang string) {
	s.invalidate(ctx)
	s.lang = lang
	s.endpoint = fmt.Sprintf(s.endpointTpl, lang)
}

// SetBot tears the current session down and switches to a new bot
// account. The next mutating call runs the full login handshake again.
func (s *Session) SetBot(ctx context.Context, c Credential) {
	s.invalidate(ctx)
	s.cred = &c
}

// invalidate logs out, drops local auth state and opens a fresh
// connection, so no request can run under the previous identity.
func (s *Session) invalidate(ctx context.Context) {
	if err := s.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("logout during session switch")
	}
	s.csrf = ""
	s.logged = false
	s.client = newClient()
}

// Login authenticates the session with its credential using the
// two-step handshake: fetch a login token, then post the credentials
// with it. Calling it while already authenticated is a no-op. A server
// rejection surfaces as *AuthError carrying the server's reason and is
// never retried.
func (s *Session) Login(ctx context.Context) error {
	if s.logged {
		return nil
	}
	if s.cred == nil {
		return &AuthError{Reason: "no bot credential configured"}
	}

	token, err := s.loginToken(ctx)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("action", "login")
	params.Set("lgname", s.cred.Name)
	params.Set("lgpassword", s.cred.Password)
	params.Set("lgtoken", token)

	var resp struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	if err := s.postForm(ctx, "login", params, &resp); err != nil {
		return err
	}

	switch resp.Login.Result {
	case "Success":
		s.logged = true
		s.csrf = ""
		s.log.Info().Str("bot", s.cred.Name).Str("lang", s.lang).Msg("logged in")
		return nil
	case "Failed":
		return &AuthError{Reason: resp.Login.Reason}
	default:
		return &ProtocolError{Op: "login", Detail: fmt.Sprintf("result %q", resp.Login.Result)}
	}
}

func (s *Session) loginToken(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", "login")

	var resp struct {
		Query struct {
			Tokens struct {
				LoginToken string `json:"logintoken"`
			} `json:"tokens"`
		} `json:"query"`
	}
	if err := s.get(ctx, "login token", params, &resp); err != nil {
		return "", err
	}
	if resp.Query.Tokens.LoginToken == "" {
		return "", &ProtocolError{Op: "login token", Detail: "missing query.tokens.logintoken"}
	}
	return resp.Query.Tokens.LoginToken, nil
}

// Logout ends the server-side session if one exists. Local state is
// cleared even when the server call fails: the point is to force a
// clean re-login.
func (s *Session) Logout(ctx context.Context) error {
	if !s.logged {
		return nil
	}

	defer func() {
		s.logged = false
		s.csrf = ""
	}()

	token, err := s.CsrfToken(ctx)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("action", "logout")
	params.Set("token", token)

	var resp struct {
		Error *apiError `json:"error"`
	}
	if err := s.postForm(ctx, "logout", params, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return &ProtocolError{Op: "logout", Detail: resp.Error.Error()}
	}
	return nil
}

// CsrfToken returns the cached csrf token, fetching one first if
// needed. The cache is dropped on logout and on any bot or language
// change.
func (s *Session) CsrfToken(ctx context.Context) (string, error) {
	if s.csrf != "" {
		return s.csrf, nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "tokens")

	var resp struct {
		Query struct {
			Tokens struct {
				CsrfToken string `json:"csrftoken"`
			} `json:"tokens"`
		} `json:"query"`
	}
	if err := s.get(ctx, "csrf token", params, &resp); err != nil {
		return "", err
	}
	if resp.Query.Tokens.CsrfToken == "" {
		return "", &ProtocolError{Op: "csrf token", Detail: "missing query.tokens.csrftoken"}
	}
	s.csrf = resp.Query.Tokens.CsrfToken
	return s.csrf, nil
}

// get issues a GET with format=json and the maxlag throttle parameter
// and decodes the JSON body into out.
func (s *Session) get(ctx context.Context, op string, params url.Values, out any) error {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("format", "json")
	q.Set("maxlag", maxLag)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	return s.do(op, req, out)
}

// postForm issues a form-encoded POST with format=json and decodes the
// JSON body into out.
func (s *Session) postForm(ctx context.Context, op string, params url.Values, out any) error {
	form := url.Values{}
	for k, vs := range params {
		form[k] = vs
	}
	form.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(op, req, out)
}

func (s *Session) do(op string, req *http.Request, out any) error {
	if err := s.limiter.Wait(req.Context()); err != nil {
		return &TransportError{Op: op, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{Op: op, Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProtocolError{Op: op, Detail: "decoding body: " + err.Error()}
	}
	return nil
}

package mediawiki

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Edit writes new content to a page. The session logs in first; the
// anonymous csrf token would be accepted by the server, silently
// attributing the edit to no one. A ratelimited response triggers
// exactly one retry of the identical request after the configured
// backoff; a second ratelimited response surfaces as *RateLimitError.
// A rejected token is treated as "logged out": local auth state is
// dropped and the login flow runs once more before the request is
// retried.
func (s *Session) Edit(ctx context.Context, page *Page, content, summary string) error {
	if page.ID == 0 && page.Title == "" {
		return &ValidationError{Msg: "edit: page has neither pageid nor title"}
	}

	if err := s.Login(ctx); err != nil {
		return err
	}

	retriedLimit := false
	retriedAuth := false
	for {
		token, err := s.CsrfToken(ctx)
		if err != nil {
			return err
		}

		params := url.Values{}
		params.Set("action", "edit")
		params.Set("token", token)
		params.Set("bot", "true")
		params.Set("minor", "true")
		params.Set("summary", summary)
		params.Set("text", content)
		if page.ID != 0 {
			params.Set("pageid", strconv.FormatInt(page.ID, 10))
		} else {
			params.Set("title", page.Title)
		}

		var resp struct {
			Error *apiError `json:"error"`
		}
		if err := s.postForm(ctx, "edit", params, &resp); err != nil {
			return err
		}
		if resp.Error == nil {
			s.log.Info().Str("page", page.Title).Msg("page edited")
			return nil
		}

		switch resp.Error.Code {
		case "ratelimited":
			if retriedLimit {
				return &RateLimitError{Op: "edit"}
			}
			retriedLimit = true
			s.log.Warn().Str("page", page.Title).Dur("backoff", s.backoff).Msg("rate limited, retrying once")
			select {
			case <-time.After(s.backoff):
			case <-ctx.Done():
				return &TransportError{Op: "edit", Err: ctx.Err()}
			}
		case "badtoken":
			if retriedAuth {
				return &AuthError{Reason: "csrf token rejected after re-login"}
			}
			retriedAuth = true
			s.csrf = ""
			s.logged = false
			if err := s.Login(ctx); err != nil {
				return err
			}
		case "permissiondenied":
			return &PermissionError{Info: resp.Error.Info}
		default:
			return fmt.Errorf("edit %q: %w", page.Title, resp.Error)
		}
	}
}

// Delete removes a page. It refuses locally, without any request, when
// the page still has incoming links; callers must have refreshed
// BacklinkCount via Backlinks first. A permission refusal from the
// server surfaces verbatim as *PermissionError and is never retried.
func (s *Session) Delete(ctx context.Context, page *Page, reason string) error {
	if page.BacklinkCount != 0 {
		s.log.Info().Str("page", page.Title).Int("backlinks", page.BacklinkCount).Msg("delete refused")
		return fmt.Errorf("delete %q: %d backlinks: %w", page.Title, page.BacklinkCount, ErrHasBacklinks)
	}
	if page.ID == 0 && page.Title == "" {
		return &ValidationError{Msg: "delete: page has neither pageid nor title"}
	}

	if err := s.Login(ctx); err != nil {
		return err
	}
	token, err := s.CsrfToken(ctx)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("action", "delete")
	params.Set("token", token)
	params.Set("reason", reason)
	if page.ID != 0 {
		params.Set("pageid", strconv.FormatInt(page.ID, 10))
	} else {
		params.Set("title", page.Title)
	}

	var resp struct {
		Error *apiError `json:"error"`
	}
	if err := s.postForm(ctx, "delete", params, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		if resp.Error.Code == "permissiondenied" {
			return &PermissionError{Info: resp.Error.Info}
		}
		return fmt.Errorf("delete %q: %w", page.Title, resp.Error)
	}

	s.log.Info().Str("page", page.Title).Msg("page deleted")
	return nil
}

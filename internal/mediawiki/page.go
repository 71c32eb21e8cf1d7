package mediawiki

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// Page is one wiki page. Identity is ID when known, Title otherwise.
// Content and BacklinkCount are only populated by explicit fetches.
type Page struct {
	ID            int64  `json:"pageid"`
	NS            int    `json:"ns"`
	Title         string `json:"title"`
	Content       string `json:"-"`
	BacklinkCount int    `json:"-"`
}

// Backlinks lists the pages linking to p and refreshes p.BacklinkCount.
// Delete relies on this count being current.
func (s *Session) Backlinks(ctx context.Context, p *Page) ([]Page, error) {
	params := url.Values{}
	params.Set("bllimit", "max")
	if p.Title != "" {
		params.Set("bltitle", p.Title)
	} else if p.ID != 0 {
		params.Set("blpageid", strconv.FormatInt(p.ID, 10))
	} else {
		return nil, &ValidationError{Msg: "backlinks: page has neither pageid nor title"}
	}

	records, err := s.ListQuery(ctx, "backlinks", params)
	if err != nil {
		return nil, err
	}

	links := make([]Page, 0, len(records))
	for _, rec := range records {
		var link Page
		if err := json.Unmarshal(rec, &link); err != nil {
			return nil, &ProtocolError{Op: "backlinks", Detail: err.Error()}
		}
		links = append(links, link)
	}
	p.BacklinkCount = len(links)
	return links, nil
}

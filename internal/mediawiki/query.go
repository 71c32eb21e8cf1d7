package mediawiki

import (
	"context"
	"encoding/json"
	"net/url"
)

// continueParam maps a list endpoint to the name of its continuation
// cursor parameter. Every list endpoint has its own prefix.
var continueParam = map[string]string{
	"categorymembers": "cmcontinue",
	"allpages":        "apcontinue",
	"allimages":       "aicontinue",
	"backlinks":       "blcontinue",
}

// ListQuery drains a cursor-based list endpoint and returns the raw
// records from every response page, in server order. Each follow-up
// request merges the previous response's continuation marker back into
// the parameters; the loop ends when no marker is returned. Results are
// fully materialized before return; on any error the partial
// accumulation is discarded.
func (s *Session) ListQuery(ctx context.Context, list string, params url.Values) ([]json.RawMessage, error) {
	contKey, ok := continueParam[list]
	if !ok {
		return nil, &ValidationError{Msg: "unknown list type " + list}
	}

	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("action", "query")
	q.Set("list", list)

	var records []json.RawMessage
	for {
		var resp struct {
			Continue map[string]string          `json:"continue"`
			Query    map[string]json.RawMessage `json:"query"`
			Error    *apiError                  `json:"error"`
		}
		if err := s.get(ctx, "list "+list, q, &resp); err != nil {
			return nil, err
		}
		if resp.Error != nil {
			return nil, &ProtocolError{Op: "list " + list, Detail: resp.Error.Error()}
		}

		raw, ok := resp.Query[list]
		if !ok {
			return nil, &ProtocolError{Op: "list " + list, Detail: "missing query." + list}
		}
		var batch []json.RawMessage
		if err := json.Unmarshal(raw, &batch); err != nil {
			return nil, &ProtocolError{Op: "list " + list, Detail: err.Error()}
		}
		records = append(records, batch...)

		cursor, more := resp.Continue[contKey]
		if !more {
			return records, nil
		}
		q.Set(contKey, cursor)
	}
}

// listPages runs ListQuery and decodes each record as a Page.
func (s *Session) listPages(ctx context.Context, list string, params url.Values) ([]Page, error) {
	records, err := s.ListQuery(ctx, list, params)
	if err != nil {
		return nil, err
	}
	pages := make([]Page, 0, len(records))
	for _, rec := range records {
		var p Page
		if err := json.Unmarshal(rec, &p); err != nil {
			return nil, &ProtocolError{Op: "list " + list, Detail: err.Error()}
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// CategoryMembers lists the pages in a category. When exclude is
// non-empty, pages that also belong to that category are filtered out.
func (s *Session) CategoryMembers(ctx context.Context, category, exclude string) ([]Page, error) {
	params := url.Values{}
	params.Set("cmtitle", "Category:"+category)
	params.Set("cmlimit", "max")
	params.Set("cmtype", "page")

	pages, err := s.listPages(ctx, "categorymembers", params)
	if err != nil {
		return nil, err
	}
	if exclude == "" {
		return pages, nil
	}

	excluded, err := s.CategoryMembers(ctx, exclude, "")
	if err != nil {
		return nil, err
	}
	drop := make(map[int64]bool, len(excluded))
	for _, p := range excluded {
		drop[p.ID] = true
	}

	kept := pages[:0]
	for _, p := range pages {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

// ShortPages lists every page whose content is empty.
func (s *Session) ShortPages(ctx context.Context) ([]Page, error) {
	params := url.Values{}
	params.Set("aplimit", "max")
	params.Set("apmaxsize", "0")
	return s.listPages(ctx, "allpages", params)
}

// AllImages lists every page in the file namespace.
func (s *Session) AllImages(ctx context.Context) ([]Page, error) {
	params := url.Values{}
	params.Set("aplimit", "max")
	params.Set("apnamespace", "6")
	return s.listPages(ctx, "allpages", params)
}

package mediawiki

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxBatch is the hard protocol ceiling on identifiers per request.
const MaxBatch = 500

// chunk splits ids into slices of at most size elements.
func chunk(ids []int64, size int) [][]int64 {
	var out [][]int64
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}

// PageContents fetches the raw wikitext of the given pages, chunking
// the request so no single call exceeds MaxBatch identifiers. Pages
// missing on the wiki are absent from the result.
func (s *Session) PageContents(ctx context.Context, ids []int64) (map[int64]string, error) {
	contents := make(map[int64]string, len(ids))
	for _, batch := range chunk(ids, MaxBatch) {
		if err := s.contentBatch(ctx, batch, contents); err != nil {
			return nil, err
		}
	}
	return contents, nil
}

// contentBatch fetches one chunk. Exceeding MaxBatch here is a caller
// programming error, not a recoverable condition.
func (s *Session) contentBatch(ctx context.Context, ids []int64, contents map[int64]string) error {
	if len(ids) > MaxBatch {
		return &ValidationError{Msg: fmt.Sprintf("content batch of %d exceeds the %d-id cap", len(ids), MaxBatch)}
	}

	joined := make([]string, len(ids))
	for i, id := range ids {
		joined[i] = strconv.FormatInt(id, 10)
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("rvprop", "content")
	params.Set("formatversion", "2")
	params.Set("pageids", strings.Join(joined, "|"))

	var resp struct {
		Query *struct {
			Pages []struct {
				ID        int64  `json:"pageid"`
				Title     string `json:"title"`
				Missing   bool   `json:"missing"`
				Revisions []struct {
					Content string `json:"content"`
				} `json:"revisions"`
			} `json:"pages"`
		} `json:"query"`
		Error *apiError `json:"error"`
	}
	if err := s.get(ctx, "page contents", params, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return &ProtocolError{Op: "page contents", Detail: resp.Error.Error()}
	}
	if resp.Query == nil {
		return &ProtocolError{Op: "page contents", Detail: "missing query.pages"}
	}

	for _, p := range resp.Query.Pages {
		if p.Missing || len(p.Revisions) == 0 {
			continue
		}
		contents[p.ID] = p.Revisions[0].Content
	}
	return nil
}

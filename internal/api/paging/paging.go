// Package paging computes page windows and RFC 5988 navigation links for
// collection endpoints. It only derives query parameters; callers apply the
// resulting skip/limit to their own store queries.
package paging

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultPage     = 1
	defaultPageSize = 100
	maxPageSize     = 100
)

// Params is the resolved page window.
type Params struct {
	Page     int
	PageSize int
	Skip     int
	Limit    int
}

// Link is one navigation entry for the Link response header.
type Link struct {
	Rel string
	URL string
}

// Paginate resolves the requested page and page size (falling back to
// defaults for absent, non-numeric or out-of-range values) and builds the
// applicable navigation links: first/prev exist only past the first page,
// next/last only before the last.
func Paginate(resourcePath string, totalCount int, pageRaw, pageSizeRaw string) (Params, []Link) {
	page := parseOrDefault(pageRaw, defaultPage)
	if page < 1 {
		page = defaultPage
	}
	pageSize := parseOrDefault(pageSizeRaw, defaultPageSize)
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	params := Params{
		Page:     page,
		PageSize: pageSize,
		Skip:     (page - 1) * pageSize,
		Limit:    pageSize,
	}

	maxPage := (totalCount + pageSize - 1) / pageSize

	var links []Link
	if page > 1 {
		links = append(links,
			Link{Rel: "first", URL: pageURL(resourcePath, 1, pageSize)},
			Link{Rel: "prev", URL: pageURL(resourcePath, page-1, pageSize)},
		)
	}
	if page < maxPage {
		links = append(links,
			Link{Rel: "next", URL: pageURL(resourcePath, page+1, pageSize)},
			Link{Rel: "last", URL: pageURL(resourcePath, maxPage, pageSize)},
		)
	}
	return params, links
}

// LinkHeader formats navigation links as a single RFC 5988 Link header
// value. It returns the empty string when there are no links, in which case
// the header must be omitted.
func LinkHeader(links []Link) string {
	if len(links) == 0 {
		return ""
	}
	segments := make([]string, 0, len(links))
	for _, link := range links {
		segments = append(segments, fmt.Sprintf("<%s>; rel=%q", link.URL, link.Rel))
	}
	return strings.Join(segments, ", ")
}

func pageURL(resourcePath string, page, pageSize int) string {
	return fmt.Sprintf("%s?page=%d&pageSize=%d", resourcePath, page, pageSize)
}

func parseOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// Package blacklist loads exact-match password deny-lists from files or URLs.
package blacklist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sw33tLie/pwcheck/pkg/whttp"
	"github.com/tidwall/gjson"
)

// maxLineBytes bounds a single blacklist line.
const maxLineBytes = 1 << 20

var (
	ErrNotFound = errors.New("blacklist not found")
	ErrFetch    = errors.New("blacklist fetch failed")
)

// Set is a collection of blacklisted passwords, matched case-sensitively.
type Set map[string]struct{}

// Contains reports whether pw is in the set.
func (s Set) Contains(pw string) bool {
	_, ok := s[pw]
	return ok
}

// Merge returns a new set holding every entry of sets.
func Merge(sets ...Set) Set {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make(Set, n)
	for _, s := range sets {
		for pw := range s {
			out[pw] = struct{}{}
		}
	}
	return out
}

// Parse reads one password per line. Surrounding whitespace is trimmed,
// blank lines are skipped and invalid UTF-8 bytes are dropped.
func Parse(r io.Reader) (Set, error) {
	set := make(Set)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		pw := strings.TrimSpace(strings.ToValidUTF8(sc.Text(), ""))
		if pw == "" {
			continue
		}
		set[pw] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read blacklist: %w", err)
	}
	return set, nil
}

// LoadFile parses the blacklist at path. A missing file yields an error
// wrapping ErrNotFound so callers can carry on with an empty set.
func LoadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// FetchOptions controls how a remote blacklist is read.
type FetchOptions struct {
	// JSONPath is a gjson path selecting the passwords in a JSON body,
	// e.g. "passwords" or "data.#.value". When empty, a body served as JSON
	// is read whole and anything else as newline-delimited text.
	JSONPath string
	Proxy    string
	RetryMax int
}

// Fetch downloads a blacklist from url.
func Fetch(ctx context.Context, url string, opts FetchOptions) (Set, error) {
	retryMax := opts.RetryMax
	if retryMax <= 0 {
		retryMax = whttp.DefaultRetryMax
	}
	client, err := whttp.NewClient(opts.Proxy, retryMax)
	if err != nil {
		return nil, err
	}
	return fetchWith(ctx, client, url, opts.JSONPath)
}

func fetchWith(ctx context.Context, client *retryablehttp.Client, url, jsonPath string) (Set, error) {
	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{URL: url}, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, url, res.StatusCode)
	}

	if jsonPath == "" && !res.IsJSON() {
		return Parse(strings.NewReader(res.BodyString()))
	}
	return fromJSON(res.Body, jsonPath)
}

// fromJSON collects every string found at path, flattening nested arrays.
// An empty path selects the whole document.
func fromJSON(body []byte, path string) (Set, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrFetch)
	}
	result := gjson.ParseBytes(body)
	if path != "" {
		result = gjson.GetBytes(body, path)
	}
	if !result.Exists() {
		return nil, fmt.Errorf("%w: path %q not found", ErrFetch, path)
	}

	set := make(Set)
	var collect func(gjson.Result)
	collect = func(r gjson.Result) {
		if r.IsArray() {
			r.ForEach(func(_, v gjson.Result) bool {
				collect(v)
				return true
			})
			return
		}
		if r.Type == gjson.String {
			if pw := strings.TrimSpace(r.Str); pw != "" {
				set[pw] = struct{}{}
			}
		}
	}
	collect(result)
	return set, nil
}

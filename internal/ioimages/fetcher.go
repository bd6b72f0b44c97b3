// Package ioimages resolves athlete portraits through the MediaWiki
// pageimages API.
package ioimages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Image sources.
const (
	SourceWikipedia = "wikipedia"
	SourceFallback  = "fallback"
)

// Fetcher looks up portraits with a bounded pool of workers.
type Fetcher struct {
	endpoint string
	fallback string
	workers  int
	timeout  time.Duration
	client   *http.Client
	quiet    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// OptClient replaces the HTTP client.
func OptClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// OptQuiet hides the progress bar.
func OptQuiet(b bool) Option {
	return func(f *Fetcher) {
		f.quiet = b
	}
}

// New creates a Fetcher from the images section of cfg.
func New(cfg *config.Config, opts ...Option) *Fetcher {
	res := &Fetcher{
		endpoint: cfg.Images.Endpoint,
		fallback: cfg.Images.FallbackURL,
		workers:  max(cfg.Images.Workers, 1),
		timeout:  time.Duration(cfg.Images.TimeoutSec) * time.Second,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Fetch builds the athlete_images table. Athletes keep their input order.
// A failed or timed out lookup yields the fallback URL for that athlete
// only. Only cancellation of ctx stops the run.
func (f *Fetcher) Fetch(
	ctx context.Context,
	athletes *table.Table,
) (*table.Table, error) {
	if err := athletes.Require("code", "name"); err != nil {
		return nil, err
	}

	s, _ := entity.Derived(entity.AthleteImages)
	res := table.New(entity.AthleteImages, s.ColumnNames()...)
	rows := make([]table.Row, athletes.Len())

	bar := newProgressBar(athletes.Len(), f.quiet)
	defer bar.Finish()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, a := range athletes.Rows {
		g.Go(func() error {
			defer bar.Increment()
			name := a.String("name")
			r := table.Row{
				"code":      a.String("code"),
				"name":      name,
				"image_url": f.fallback,
				"source":    SourceFallback,
			}
			rows[i] = r

			src, err := f.lookup(gCtx, wikiTitle(name))
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err != nil {
				slog.Debug("Portrait lookup failed", "name", name, "error", err)
				return nil
			}
			if src != "" {
				r["image_url"] = src
				r["source"] = SourceWikipedia
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := 0
	for _, r := range rows {
		if r["source"] == SourceWikipedia {
			found++
		}
		res.Append(r)
	}
	slog.Info("Portraits resolved", "found", found, "total", len(rows))
	return res, nil
}

type apiResponse struct {
	Query struct {
		Pages map[string]struct {
			Title    string `json:"title"`
			Original *struct {
				Source string `json:"source"`
			} `json:"original"`
			Thumbnail *struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

// lookup returns the portrait URL of a page, or an empty string when the
// page has no image.
func (f *Fetcher) lookup(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", nil
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("prop", "pageimages")
	q.Set("piprop", "original|thumbnail")
	q.Set("pithumbsize", "400")
	q.Set("redirects", "1")
	q.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", RequestError(title, err)
	}
	req.Header.Set("User-Agent", config.AppName+"/portraits")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", RequestError(title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("status %s", resp.Status)
		return "", RequestError(title, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", RequestError(title, err)
	}

	var ar apiResponse
	enc := gnfmt.GNjson{}
	if err = enc.Decode(body, &ar); err != nil {
		return "", DecodeError(title, err)
	}
	if ar.Query.Pages == nil {
		return "", DecodeError(title, errors.New("no pages in response"))
	}

	for _, p := range ar.Query.Pages {
		switch {
		case p.Original != nil && p.Original.Source != "":
			return p.Original.Source, nil
		case p.Thumbnail != nil && p.Thumbnail.Source != "":
			return p.Thumbnail.Source, nil
		}
	}
	return "", nil
}

// wikiTitle converts names like "RINER Teddy" to "Teddy Riner". Names
// without an upper-case family name are returned as is.
func wikiTitle(name string) string {
	words := strings.Fields(name)
	var family, given []string
	for i, w := range words {
		if len(given) == 0 && isUpper(w) {
			family = append(family, w)
			continue
		}
		given = words[i:]
		break
	}
	if len(family) == 0 || len(given) == 0 {
		return strings.Join(words, " ")
	}
	title := cases.Title(language.Und)
	for i := range family {
		family[i] = title.String(family[i])
	}
	return strings.Join(append(given, family...), " ")
}

func isUpper(w string) bool {
	return len([]rune(w)) > 1 && strings.ToUpper(w) == w &&
		strings.ToLower(w) != w
}

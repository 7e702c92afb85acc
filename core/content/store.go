// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package content loads and renders the documentation pages.

Pages live under <root>/docs-<locale>/ as .mdx or .md files with a YAML
frontmatter header. Rendering expands the brand components for the serving
brand, converts Markdown to HTML and sanitizes the result.
*/
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/lrucache"
)

// ErrNotFound is returned when no page exists for a slug.
var ErrNotFound = errors.New("page not found")

// Page extensions, in lookup order.
var extensions = []string{".mdx", ".md"}

const indexName = "index"

// Heading is one entry of a page's table of contents.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Page is a rendered documentation page.
type Page struct {
	Locale      locale.Locale `json:"locale"`
	Slug        string        `json:"slug"`
	File        string        `json:"file"`
	FrontMatter FrontMatter   `json:"frontMatter"`
	HTML        string        `json:"html"`
	TOC         []Heading     `json:"toc"`

	// Fallback is set when the page was requested in another locale and
	// the English page was served instead.
	Fallback bool `json:"fallback"`
}

// Title returns the frontmatter title, or the sidebar label when unset.
func (p *Page) Title() string {
	if p.FrontMatter.Title != "" {
		return p.FrontMatter.Title
	}

	return p.FrontMatter.SidebarLabel
}

// Store reads pages from a file system laid out by locale.
//
// A Store is safe for concurrent use.
type Store struct {
	fsys   fs.FS
	cache  *lrucache.Cache
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewStore returns a Store over fsys. A nil cache disables caching.
func NewStore(fsys fs.FS, cache *lrucache.Cache) *Store {
	return &Store{
		fsys:  fsys,
		cache: cache,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: newPolicy(),
	}
}

var classNames = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// newPolicy allows the HTML produced by Markdown and the layout components.
func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("details", "summary")
	policy.AllowAttrs("open").OnElements("details")
	policy.AllowAttrs("id").Matching(headingIDPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").Matching(classNames).OnElements("div", "span", "code", "pre", "details", "h5")
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return policy
}

// Page returns the page at slug for l, rendered for b.
//
// When l has no such page the English page is returned with Fallback set.
func (s *Store) Page(l locale.Locale, slug string, b brand.Brand) (*Page, error) {
	slug, ok := cleanSlug(slug)
	if !ok {
		return nil, ErrNotFound
	}

	file, info, err := s.find(l, slug)
	fallback := false

	if errors.Is(err, ErrNotFound) && l != locale.Default {
		file, info, err = s.find(locale.Default, slug)
		fallback = true
	}

	if err != nil {
		return nil, err
	}

	pageLocale := l
	if fallback {
		pageLocale = locale.Default
	}

	key := fmt.Sprintf("%s|%s|%s|%d", b.ID, pageLocale, file, info.ModTime().UnixNano())

	if page, ok := s.cached(key); ok {
		page.Fallback = fallback

		return page, nil
	}

	src, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	page, err := s.render(string(src), pageLocale, b)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", file, err)
	}

	page.Slug = slug
	page.File = file

	s.store(key, page)

	log.Debug().
		Str("file", file).
		Str("brand", string(b.ID)).
		Msg("Rendered page")

	page.Fallback = fallback

	return page, nil
}

// Exists reports whether l has its own page at slug.
func (s *Store) Exists(l locale.Locale, slug string) bool {
	slug, ok := cleanSlug(slug)
	if !ok {
		return false
	}

	_, _, err := s.find(l, slug)

	return err == nil
}

// List returns the slugs of every page of l, sorted.
// A locale without a content directory has no pages.
func (s *Store) List(l locale.Locale) ([]string, error) {
	root := l.ContentDir()

	var slugs []string

	err := fs.WalkDir(s.fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !slices.Contains(extensions, ext) {
			return nil
		}

		slug := strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), ext)
		if slug == indexName {
			slug = ""
		} else {
			slug = strings.TrimSuffix(slug, "/"+indexName)
		}

		slugs = append(slugs, slug)

		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	slices.Sort(slugs)

	return slices.Compact(slugs), nil
}

// cleanSlug trims slashes and rejects slugs escaping the content directory.
func cleanSlug(slug string) (string, bool) {
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return "", true
	}

	if !fs.ValidPath(slug) || strings.Contains(slug, `\`) {
		return "", false
	}

	return slug, true
}

func (s *Store) find(l locale.Locale, slug string) (string, fs.FileInfo, error) {
	base := path.Join(l.ContentDir(), slug)

	candidates := make([]string, 0, 2*len(extensions))
	if slug != "" {
		for _, ext := range extensions {
			candidates = append(candidates, base+ext)
		}
	}

	for _, ext := range extensions {
		candidates = append(candidates, path.Join(base, indexName+ext))
	}

	for _, file := range candidates {
		info, err := fs.Stat(s.fsys, file)
		if err == nil && !info.IsDir() {
			return file, info, nil
		}
	}

	return "", nil, ErrNotFound
}

func (s *Store) render(src string, l locale.Locale, b brand.Brand) (*Page, error) {
	fm, body, err := ParseFrontMatter(src)
	if err != nil {
		return nil, err
	}

	fm.Title = ExpandBrandNames(fm.Title, b, l)
	fm.Description = ExpandBrandNames(fm.Description, b, l)

	var buf bytes.Buffer
	pctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := s.md.Convert([]byte(preprocess(body, b, l)), &buf, parser.WithContext(pctx)); err != nil {
		return nil, err
	}

	sanitized := s.policy.SanitizeBytes(buf.Bytes())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(sanitized))
	if err != nil {
		return nil, err
	}

	if fm.Title == "" {
		fm.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	return &Page{
		Locale:      l,
		FrontMatter: fm,
		HTML:        string(sanitized),
		TOC:         tableOfContents(doc),
	}, nil
}

// tableOfContents collects the second and third level headings that carry an id.
func tableOfContents(doc *goquery.Document) []Heading {
	var toc []Heading

	doc.Find("h2[id], h3[id]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")

		level := 2
		if goquery.NodeName(sel) == "h3" {
			level = 3
		}

		toc = append(toc, Heading{
			Level: level,
			ID:    id,
			Text:  strings.TrimSpace(sel.Text()),
		})
	})

	return toc
}

func (s *Store) cached(key string) (*Page, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Dropping undecodable cache entry")
		s.cache.Remove(key)

		return nil, false
	}

	return &page, true
}

func (s *Store) store(key string, page *Page) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(page)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode page for cache")

		return
	}

	s.cache.Add(key, data)
}

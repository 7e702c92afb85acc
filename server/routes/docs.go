// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aicoding-caret/caretdocs/assets/views"
	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/content"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/server/request_context"
	"github.com/aicoding-caret/caretdocs/server/utils"
)

// Docs serves the documentation pages held by Pages.
type Docs struct {
	Pages *content.Store
}

// DocPage is the handler for /{locale} and /{locale}/{path...}.
//
// A first segment that is not a locale is a 404. A locale root without an
// index page redirects to the locale's docs entry page.
func (d *Docs) DocPage(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)

	seg := utils.GetPathVar(r, "locale")

	l := locale.Locale(seg)
	if !l.IsSupported() {
		w.WriteHeader(http.StatusNotFound)

		return fmt.Errorf("unknown locale %q: %w", seg, content.ErrNotFound)
	}

	slug := utils.GetPathVar(r, "path")

	page, err := d.Pages.Page(l, slug, rc.Brand)
	if errors.Is(err, content.ErrNotFound) && strings.Trim(slug, "/") == "" {
		http.Redirect(w, r, site.DocsHome(l), http.StatusFound)

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to load page %s/%s: %w", l, slug, err)
	}

	ctx := r.Context()
	vars := site.Vars(rc.Brand, rc.Locale)

	title := siteTitle(ctx, vars)
	if pageTitle := page.Title(); pageTitle != "" {
		title = pageTitle + " | " + title
	}

	return renderPage(w, r, newPageData(r, title, page.FrontMatter.Description), views.Doc(views.DocData{
		Page:    page,
		EditURL: editURL(page),
	}))
}

// editURL links to the page source in the docs repository.
func editURL(page *content.Page) string {
	repo := strings.TrimSuffix(config.Global.Instance.RepoURL, "/")
	if repo == "" || page.File == "" {
		return ""
	}

	return repo + "/edit/main/" + page.File
}

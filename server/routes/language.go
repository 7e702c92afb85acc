// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/untrusted"
	"github.com/aicoding-caret/caretdocs/i18n"
	"github.com/aicoding-caret/caretdocs/server/utils"
)

// LanguagePOST stores the chosen locale and redirects to the submitted path
// switched to that locale.
//
// Form values:
//   - locale: a supported locale code.
//   - path: a same-origin path; anything else redirects to the site root.
func LanguagePOST(w http.ResponseWriter, r *http.Request) error {
	l, ok := locale.Parse(utils.GetFormValue(r, "locale"))
	if !ok {
		err := i18n.NewUserError(r.Context(), "Language selection is required.")
		http.Error(w, err.Error(), http.StatusBadRequest)

		return err
	}

	untrusted.SetPreferredLocale(w, r, l)

	target := utils.SanitizeReturnPath(utils.GetFormValue(r, "path"))

	switch {
	case target == "":
		target = "/"
	case locale.HasExplicit(target):
		target = locale.SwitchPath(target, l)
	}

	http.Redirect(w, r, target, http.StatusSeeOther)

	return nil
}

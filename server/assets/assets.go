// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package assets holds the files embedded into the docs server binary:
// stylesheets, the favicon and the gettext catalogues. main sets FS at
// startup.
package assets

import "embed"

// FS is rooted at the repository root, so paths read "assets/css/site.css"
// and "po/ko.po".
var FS embed.FS

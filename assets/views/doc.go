// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views renders the documentation site pages as templ components.

Chrome labels arrive as msgids and are translated at render time with the
locale carried by the context, see package i18n.
*/
package views

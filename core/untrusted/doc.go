// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package untrusted reads and writes the state a browser keeps for the docs
site, which today is only the preferred language cookie.

Cookie values come from the client and are validated by the caller, for
example with locale.Parse, before they influence a response.
*/
package untrusted

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality for the
documentation server.

A Middleware wraps the next handler in the chain. Chains are assembled by
router.RegisterMiddleware; route handlers return errors and are adapted
with CatchError.
*/
package middleware

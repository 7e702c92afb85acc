// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter throttles documentation requests per client network with a
token bucket, answering 429 Too Many Requests with Retry-After once a
network's bucket is empty. Static assets and health checks are never limited.
*/
package limiter

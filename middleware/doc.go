// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

  - WithLogging: request start/completion logging with duration
  - CORS: cross-origin headers and preflight handling
  - JSONResponse, ErrorResponse: JSON response writers
  - ParseJSONBody: request body decoding
  - GetClientIP: origin address extraction behind proxies

GetClientIP is the boundary's origin derivation for rate limiting; the core
only ever sees its salted hash.
*/
package middleware

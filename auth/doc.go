// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and origin hashing.

# Poll Tokens

Poll identifiers are short random tokens:

	token, err := auth.GeneratePollToken()

Tokens are base62 encoded (alphanumeric only) so they drop straight into
shareable URLs without escaping.

# IP Hashing

For privacy-preserving rate limiting:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. Raw addresses are
never stored; the salt comes from configuration (IP_HASH_SALT) so hashes
are not portable between deployments.
*/
package auth

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and
environment variables.

Flags take precedence over environment variables. Required settings with no
default cause ParseFlags to return an error rather than starting with a
partial configuration.

Settings:

  - PORT (-p): server port (default 3318)
  - DATABASE_URL (-d): connection string; required unless type is memory
  - DATABASE_TYPE (-t): sqlite, postgres, or memory (default sqlite)
  - SHARE_BASE_URL (--share-base): base for shareable poll links
  - VOTE_COOLDOWN (--cooldown): per-origin cooldown window (default 60s)
  - KEEPALIVE_INTERVAL (--keepalive): stream keep-alive period (default 30s)
  - IP_HASH_SALT (--ip-salt): secret for origin hashing; required
*/
package cliparse

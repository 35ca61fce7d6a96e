// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

The schema is created programmatically on server startup via CreateSchema.
All statements use IF NOT EXISTS, so startup against an existing database is
a no-op. The DDL is restricted to the dialect subset shared by PostgreSQL
and SQLite; see the store/sqlstore package for the query layer.
*/
package db

// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers shared by
every handler: request logging, the operator auth guard, and the JSON
envelope writers.
*/
package middleware

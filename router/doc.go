// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

NewRouter wires handlers to method-qualified ServeMux patterns, wraps every
API route in request logging, and puts the operator console behind the
Basic-auth guard. Unknown paths fall through to the captive-portal redirect
rather than a 404.
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the livepoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, engine, cfg)

# Endpoints

Health:

	GET /health

Polls (public):

	POST /polls          - Create poll
	GET  /polls/{id}     - Poll info with current results

Voting (public, requires X-Voter-Fingerprint):

	POST /polls/{id}/votes - Submit a vote

Live results:

	GET /polls/{id}/live - Server-Sent Events results stream
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/live"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/voting"
)

// FingerprintHeader carries the opaque identity token generated client-side.
const FingerprintHeader = "X-Voter-Fingerprint"

type VoteHandler struct {
	svc       *voting.Service
	broadcast live.Broadcaster
	cfg       cliparse.Config
}

func NewVoteHandler(svc *voting.Service, broadcast live.Broadcaster, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{svc: svc, broadcast: broadcast, cfg: cfg}
}

// SubmitVote handles POST /polls/{id}/votes
//
// Each rejection cause maps to its own status so the client can render a
// distinct message. Rejections are terminal for the request; nothing is
// retried server-side.
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	identity := r.Header.Get(FingerprintHeader)
	originHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	snapshot, err := h.svc.SubmitVote(r.Context(), pollID, req.Option, identity, originHash, r.UserAgent())
	if err != nil {
		h.writeRejection(w, pollID, err)
		return
	}

	// Admission control does not broadcast; the boundary fans the accepted
	// snapshot out exactly once.
	h.broadcast.OnVoteAccepted(pollID, snapshot)

	slog.Info("vote accepted",
		"poll_id", pollID,
		"option", req.Option,
		"total", humanize.Comma(int64(snapshot.Total)),
	)

	middleware.JSONResponse(w, http.StatusCreated, snapshot)
}

func (h *VoteHandler) writeRejection(w http.ResponseWriter, pollID string, err error) {
	switch {
	case errors.Is(err, voting.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, voting.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Option index out of range")
	case errors.Is(err, voting.ErrMissingIdentity):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Voter fingerprint required")
	case errors.Is(err, voting.ErrDuplicateIdentity):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted on this poll")
	case errors.Is(err, voting.ErrRateLimited):
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many votes from your network, try again shortly")
	default:
		slog.Error("failed to submit vote", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
	}
}

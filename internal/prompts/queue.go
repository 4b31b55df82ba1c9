// Package prompts holds the review queue for user-submitted prompt content.
package prompts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/kirnagrma/console/internal/kvstore"
)

// storageKey is the kv key holding the serialized queue.
const storageKey = "kg_prompt_requests"

// ErrRequestNotFound is returned when no submission matches the given id.
var ErrRequestNotFound = errors.New("prompt request not found")

// Status values a submission moves through.
const (
	StatusPending           = "pending"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusNeedsModification = "needs_modification"
)

// statusOrder ranks statuses for review-first listing.
var statusOrder = map[string]int{
	StatusPending:           0,
	StatusNeedsModification: 1,
	StatusApproved:          2,
	StatusRejected:          3,
}

// Request is one creator prompt submission awaiting review.
type Request struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	CreatorName       string    `json:"creatorName"`
	CreatorUsername   string    `json:"creatorUsername,omitempty"`
	CreatorEmail      string    `json:"creatorEmail,omitempty"`
	Title             string    `json:"title"`
	PromptDescription string    `json:"promptDescription"`
	AIModel           string    `json:"aiModel,omitempty"`
	Tags              []string  `json:"tags"`
	PreviewImage      string    `json:"previewImage,omitempty"`
	LikesCount        int       `json:"likesCount"`
	ViewsCount        int       `json:"viewsCount"`
	CommentsCount     int       `json:"commentsCount"`
	RemixesCount      int       `json:"remixesCount"`
	SubmittedAt       time.Time `json:"submittedAt"`
	Status            string    `json:"status"`
	Reason            string    `json:"reason,omitempty"`
}

// Queue persists prompt submissions through the kv port and applies the
// review transitions.
type Queue struct {
	kv kvstore.Store
}

// NewQueue creates a Queue over the given persistence port.
func NewQueue(kv kvstore.Store) *Queue {
	return &Queue{kv: kv}
}

// List returns all submissions, pending first, newest submissions first
// within the same status.
func (q *Queue) List(ctx context.Context) ([]Request, error) {
	reqs, err := q.load(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reqs, func(i, j int) bool {
		oi, oj := rank(reqs[i].Status), rank(reqs[j].Status)
		if oi != oj {
			return oi < oj
		}
		return reqs[i].SubmittedAt.After(reqs[j].SubmittedAt)
	})
	return reqs, nil
}

// ListByStatus returns submissions with the given status, newest first.
func (q *Queue) ListByStatus(ctx context.Context, status string) ([]Request, error) {
	reqs, err := q.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

// Get returns the submission with the given id.
func (q *Queue) Get(ctx context.Context, id string) (*Request, error) {
	reqs, err := q.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].ID == id {
			return &reqs[i], nil
		}
	}
	return nil, ErrRequestNotFound
}

// Add appends a new submission in pending state.
func (q *Queue) Add(ctx context.Context, r Request) error {
	reqs, err := q.load(ctx)
	if err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now().UTC()
	}
	return q.save(ctx, append(reqs, r))
}

// Approve publishes the submission.
func (q *Queue) Approve(ctx context.Context, id string) (*Request, error) {
	return q.transition(ctx, id, StatusApproved, "")
}

// Reject declines the submission with an optional reason for the creator.
func (q *Queue) Reject(ctx context.Context, id, reason string) (*Request, error) {
	return q.transition(ctx, id, StatusRejected, reason)
}

// RequestModification sends the submission back to the creator with a
// reason describing the required changes.
func (q *Queue) RequestModification(ctx context.Context, id, reason string) (*Request, error) {
	return q.transition(ctx, id, StatusNeedsModification, reason)
}

func (q *Queue) transition(ctx context.Context, id, status, reason string) (*Request, error) {
	reqs, err := q.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range reqs {
		if reqs[i].ID != id {
			continue
		}
		reqs[i].Status = status
		reqs[i].Reason = reason
		if err := q.save(ctx, reqs); err != nil {
			return nil, err
		}
		return &reqs[i], nil
	}
	return nil, ErrRequestNotFound
}

// load reads the queue. Absent or unparsable data behaves as an empty
// queue; the corrupt case is logged.
func (q *Queue) load(ctx context.Context) ([]Request, error) {
	raw, ok, err := q.kv.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("loading prompt queue: %w", err)
	}
	if !ok {
		return []Request{}, nil
	}

	var reqs []Request
	if err := json.Unmarshal([]byte(raw), &reqs); err != nil {
		slog.Warn("persisted prompt queue is unparsable, starting empty", "error", err)
		return []Request{}, nil
	}
	if reqs == nil {
		reqs = []Request{}
	}
	return reqs, nil
}

func (q *Queue) save(ctx context.Context, reqs []Request) error {
	raw, err := json.Marshal(reqs)
	if err != nil {
		return fmt.Errorf("encoding prompt queue: %w", err)
	}
	if err := q.kv.Set(ctx, storageKey, string(raw)); err != nil {
		return fmt.Errorf("persisting prompt queue: %w", err)
	}
	return nil
}

func rank(status string) int {
	if o, ok := statusOrder[status]; ok {
		return o
	}
	return len(statusOrder)
}

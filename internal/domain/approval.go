package domain

import (
	"errors"
	"strings"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

var (
	ErrInvalidTransition = errors.New("invalid approval transition")
	ErrNoteRequired      = errors.New("rejection note is required")
)

// Approval is the review state shared by events, places and provider requests.
// Note is only ever set while Status is ApprovalRejected.
type Approval struct {
	Status ApprovalStatus
	Note   *string
}

func NewApproval() Approval {
	return Approval{Status: ApprovalPending}
}

func (a Approval) IsApproved() bool { return a.Status == ApprovalApproved }

// Approve moves a pending item to approved.
func (a Approval) Approve() (Approval, error) {
	if a.Status != ApprovalPending {
		return a, ErrInvalidTransition
	}
	return Approval{Status: ApprovalApproved}, nil
}

// Reject moves a pending item to rejected with a non-empty note.
func (a Approval) Reject(note string) (Approval, error) {
	if a.Status != ApprovalPending {
		return a, ErrInvalidTransition
	}

	note = strings.TrimSpace(note)
	if note == "" {
		return a, ErrNoteRequired
	}

	return Approval{Status: ApprovalRejected, Note: &note}, nil
}

// RejectOptionalNote moves a pending item to rejected. A blank note is stored
// as no note.
func (a Approval) RejectOptionalNote(note string) (Approval, error) {
	if a.Status != ApprovalPending {
		return a, ErrInvalidTransition
	}

	note = strings.TrimSpace(note)
	if note == "" {
		return Approval{Status: ApprovalRejected}, nil
	}

	return Approval{Status: ApprovalRejected, Note: &note}, nil
}

// Resubmit is applied on every owner edit: back to pending, note cleared.
func (a Approval) Resubmit() Approval {
	return Approval{Status: ApprovalPending}
}

func ParseApprovalStatus(s string) (ApprovalStatus, bool) {
	switch st := ApprovalStatus(strings.ToLower(s)); st {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return st, true
	}
	return "", false
}

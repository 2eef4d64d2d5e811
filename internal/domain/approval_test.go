package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproval_Approve(t *testing.T) {
	a, err := NewApproval().Approve()
	require.NoError(t, err)
	assert.True(t, a.IsApproved())
	assert.Nil(t, a.Note)

	_, err = a.Approve()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApproval_Reject(t *testing.T) {
	_, err := NewApproval().Reject("   ")
	assert.ErrorIs(t, err, ErrNoteRequired)

	a, err := NewApproval().Reject("  blurry photo ")
	require.NoError(t, err)
	assert.Equal(t, ApprovalRejected, a.Status)
	require.NotNil(t, a.Note)
	assert.Equal(t, "blurry photo", *a.Note)

	_, err = a.Reject("again")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApproval_RejectOptionalNote(t *testing.T) {
	a, err := NewApproval().RejectOptionalNote("  ")
	require.NoError(t, err)
	assert.Equal(t, ApprovalRejected, a.Status)
	assert.Nil(t, a.Note)

	a, err = NewApproval().RejectOptionalNote(" wrong id photo ")
	require.NoError(t, err)
	require.NotNil(t, a.Note)
	assert.Equal(t, "wrong id photo", *a.Note)

	_, err = a.RejectOptionalNote("")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApproval_ResubmitClearsNote(t *testing.T) {
	rejected, err := NewApproval().Reject("missing insurance")
	require.NoError(t, err)

	a := rejected.Resubmit()
	assert.Equal(t, ApprovalPending, a.Status)
	assert.Nil(t, a.Note)

	approved, err := NewApproval().Approve()
	require.NoError(t, err)
	assert.Equal(t, ApprovalPending, approved.Resubmit().Status)
}

func TestParseApprovalStatus(t *testing.T) {
	st, ok := ParseApprovalStatus("Approved")
	assert.True(t, ok)
	assert.Equal(t, ApprovalApproved, st)

	_, ok = ParseApprovalStatus("archived")
	assert.False(t, ok)
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	in := time.Date(2026, 3, 2, 3, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Day(in))
}

func TestUser_HasRole(t *testing.T) {
	u := User{Roles: []Role{RoleServiceProvider}}

	assert.True(t, u.HasRole(RoleServiceProvider))
	assert.False(t, u.HasRole(RoleAdmin))
	assert.False(t, Role("Owner").Valid())
}

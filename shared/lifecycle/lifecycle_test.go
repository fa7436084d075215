package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
)

func rejected(message string) State {
	return State{Status: constants.StatusRejected, RejectionMessage: &message}
}

func TestInitialIsPending(t *testing.T) {
	state := Initial()
	assert.Equal(t, constants.StatusPending, state.Status)
	assert.Nil(t, state.RejectionMessage)
}

func TestApprove(t *testing.T) {
	next, err := Apply(Initial(), EventApprove, "")
	require.NoError(t, err)
	assert.Equal(t, constants.StatusApproved, next.Status)
	assert.Nil(t, next.RejectionMessage)
}

func TestReviewRequiresPending(t *testing.T) {
	for _, current := range []State{{Status: constants.StatusApproved}, rejected("blurry")} {
		for _, ev := range []Event{EventApprove, EventReject} {
			next, err := Apply(current, ev, "still bad")
			assert.True(t, apperrors.Is(err, apperrors.KindConflict), "%s from %s", ev, current.Status)
			assert.Equal(t, current, next)
		}
	}
}

func TestRejectRequiresMessage(t *testing.T) {
	for _, message := range []string{"", "   ", "\n\t"} {
		next, err := Apply(Initial(), EventReject, message)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		assert.Equal(t, Initial(), next)
	}
}

func TestRejectStoresTrimmedMessage(t *testing.T) {
	next, err := Apply(Initial(), EventReject, "  Fotos de baja calidad ")
	require.NoError(t, err)
	assert.Equal(t, constants.StatusRejected, next.Status)
	require.NotNil(t, next.RejectionMessage)
	assert.Equal(t, "Fotos de baja calidad", *next.RejectionMessage)
}

func TestResubmitClearsRejection(t *testing.T) {
	for _, message := range []string{"Fotos de baja calidad", "x", "precio incorrecto"} {
		next, err := Apply(rejected(message), EventResubmit, "")
		require.NoError(t, err)
		assert.Equal(t, constants.StatusPending, next.Status)
		assert.Nil(t, next.RejectionMessage)
	}
}

func TestResubmitOnlyFromRejected(t *testing.T) {
	for _, status := range []constants.ListingStatus{constants.StatusPending, constants.StatusApproved} {
		_, err := Apply(State{Status: status}, EventResubmit, "")
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	}
}

func TestEditReturnsToPending(t *testing.T) {
	for _, current := range []State{Initial(), rejected("blurry"), {Status: constants.StatusApproved}} {
		next, err := Apply(current, EventEdit, "")
		require.NoError(t, err)
		assert.Equal(t, Initial(), next)
	}
}

func TestUnknownEvent(t *testing.T) {
	_, err := Apply(Initial(), Event("publish"), "")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestReviewEvent(t *testing.T) {
	ev, err := ReviewEvent(constants.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, EventApprove, ev)

	ev, err = ReviewEvent(constants.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, EventReject, ev)

	_, err = ReviewEvent(constants.StatusPending)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

package requests

import (
	"testing"

	"pet-dispatch/internal/platform/apperr"
	"pet-dispatch/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

func TestStage_Previous(t *testing.T) {
	_, ok := StageArrivalOrigin.Previous()
	assert.False(t, ok)

	prev, ok := StagePetOnBoard.Previous()
	assert.True(t, ok)
	assert.Equal(t, StageArrivalOrigin, prev)

	prev, ok = StageDelivered.Previous()
	assert.True(t, ok)
	assert.Equal(t, StagePetOnBoard, prev)

	assert.False(t, Stage("teleported").Valid())
}

func TestServiceRequest_IsDelivered(t *testing.T) {
	assert.False(t, ServiceRequest{}.IsDelivered())
	assert.True(t, ServiceRequest{Confirmed: true}.IsDelivered())
	assert.True(t, ServiceRequest{Milestones: []Milestone{{Stage: StageDelivered}}}.IsDelivered())
	assert.False(t, ServiceRequest{Milestones: []Milestone{{Stage: StagePetOnBoard}}}.IsDelivered())
}

func TestCheckAccept(t *testing.T) {
	guide := auth.Claims{UserID: "g-1", Role: auth.RoleGuide}
	user := auth.Claims{UserID: "u-1", Role: auth.RoleUser}

	assert.NoError(t, checkAccept(ServiceRequest{}, guide))
	assert.ErrorIs(t, checkAccept(ServiceRequest{}, user), ErrNotGuide)
	assert.ErrorIs(t, checkAccept(ServiceRequest{AssignedGuideID: "g-1"}, guide), ErrAlreadyAssigned)
	assert.ErrorIs(t, checkAccept(ServiceRequest{AssignedGuideID: "g-2"}, guide), ErrAlreadyAssigned)
	// Forbidden antes que Conflict
	assert.ErrorIs(t, checkAccept(ServiceRequest{AssignedGuideID: "g-2"}, user), ErrNotGuide)
}

func TestCheckMilestone(t *testing.T) {
	assigned := ServiceRequest{AssignedGuideID: "g-1"}
	withArrival := ServiceRequest{AssignedGuideID: "g-1", Milestones: []Milestone{{Stage: StageArrivalOrigin}}}

	cases := []struct {
		name  string
		r     ServiceRequest
		stage Stage
		actor string
		want  error
		kind  error
	}{
		{"unassigned", ServiceRequest{}, StageArrivalOrigin, "g-1", ErrNotAssignedGuide, apperr.ErrForbidden},
		{"other guide", assigned, StageArrivalOrigin, "g-2", ErrNotAssignedGuide, apperr.ErrForbidden},
		{"other guide with bad stage", assigned, Stage("nope"), "g-2", ErrNotAssignedGuide, apperr.ErrForbidden},
		{"bad stage", assigned, Stage("nope"), "g-1", ErrInvalidStage, apperr.ErrInvalidInput},
		{"skip", assigned, StagePetOnBoard, "g-1", ErrOutOfOrder, apperr.ErrInvalidInput},
		{"skip to delivered", withArrival, StageDelivered, "g-1", ErrOutOfOrder, apperr.ErrInvalidInput},
		{"duplicate", withArrival, StageArrivalOrigin, "g-1", ErrDuplicateStage, apperr.ErrConflict},
		{"first", assigned, StageArrivalOrigin, "g-1", nil, nil},
		{"second", withArrival, StagePetOnBoard, "g-1", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkMilestone(tc.r, tc.stage, tc.actor)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestCheckMilestone_OutOfOrderNamesPreviousStage(t *testing.T) {
	err := checkMilestone(ServiceRequest{AssignedGuideID: "g-1"}, StagePetOnBoard, "g-1")
	assert.Equal(t, "previous milestone required: arrival_origin", apperr.Message(err))
}

func TestCheckOwnerEdit(t *testing.T) {
	assert.NoError(t, checkOwnerEdit(ServiceRequest{OwnerUserID: "u-1"}, "u-1"))
	assert.ErrorIs(t, checkOwnerEdit(ServiceRequest{OwnerUserID: "u-1"}, "u-2"), ErrNotFound)
	assert.ErrorIs(t, checkOwnerEdit(ServiceRequest{OwnerUserID: "u-1", AssignedGuideID: "g-1"}, "u-1"), ErrLocked)
}

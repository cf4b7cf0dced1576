package requests

type ServiceKind string

const (
	KindTransfer ServiceKind = "transfer"
	KindWalk     ServiceKind = "walk"
	KindVetVisit ServiceKind = "vet_visit"
)

type ScheduleMode string

const (
	ScheduleImmediate ScheduleMode = "immediate"
	ScheduleScheduled ScheduleMode = "scheduled"
)

// Stage es un hito del servicio. El orden es fijo.
type Stage string

const (
	StageArrivalOrigin Stage = "arrival_origin"
	StagePetOnBoard    Stage = "pet_on_board"
	StageDelivered     Stage = "delivered"
)

var stageOrder = []Stage{StageArrivalOrigin, StagePetOnBoard, StageDelivered}

func (s Stage) index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Stage) Valid() bool {
	return s.index() >= 0
}

// Previous devuelve el hito inmediatamente anterior; false para el primero.
func (s Stage) Previous() (Stage, bool) {
	i := s.index()
	if i <= 0 {
		return "", false
	}
	return stageOrder[i-1], true
}

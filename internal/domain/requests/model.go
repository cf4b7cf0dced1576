package requests

import "time"

type Location struct {
	Text string
	Lat  *float64
	Lng  *float64
}

// QuickPet describe una mascota sin registrar, cargada inline en la solicitud.
type QuickPet struct {
	Name    string
	Species string
	Notes   string
}

// Details son los campos que el dueño puede editar mientras no hay guía asignado.
type Details struct {
	Kind         ServiceKind
	ScheduleMode ScheduleMode
	ScheduledAt  *time.Time

	Origin      Location
	Destination Location

	PetID    string
	QuickPet QuickPet

	Observations string
}

type ServiceRequest struct {
	ID          string
	OwnerUserID string

	Details

	CreatedAt time.Time

	// Confirmed solo se marca junto con el hito delivered.
	Confirmed       bool
	AssignedGuideID string

	// Milestones ordenados por RecordedAt.
	Milestones []Milestone
}

type Milestone struct {
	ID         string
	RequestID  string
	Stage      Stage
	RecordedAt time.Time
	RecordedBy string
}

func (r ServiceRequest) IsAssigned() bool {
	return r.AssignedGuideID != ""
}

func (r ServiceRequest) HasStage(s Stage) bool {
	for _, m := range r.Milestones {
		if m.Stage == s {
			return true
		}
	}
	return false
}

// IsDelivered: confirmado o con hito delivered registrado.
func (r ServiceRequest) IsDelivered() bool {
	return r.Confirmed || r.HasStage(StageDelivered)
}

// RatingSummary es la calificación embebida en la representación de la solicitud.
type RatingSummary struct {
	ID        string
	Stars     int
	Comment   string
	CreatedAt time.Time
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-dispatch/internal/domain/requests"

	"github.com/jmoiron/sqlx"
)

type RequestsRepo struct {
	db *sqlx.DB
}

func NewRequestsRepo(db *sqlx.DB) *RequestsRepo {
	return &RequestsRepo{db: db}
}

type requestRow struct {
	ID              string          `db:"id"`
	OwnerUserID     string          `db:"owner_user_id"`
	ServiceKind     string          `db:"service_kind"`
	ScheduleMode    string          `db:"schedule_mode"`
	ScheduledAt     sql.NullTime    `db:"scheduled_at"`
	OriginText      string          `db:"origin_text"`
	OriginLat       sql.NullFloat64 `db:"origin_lat"`
	OriginLng       sql.NullFloat64 `db:"origin_lng"`
	DestText        string          `db:"dest_text"`
	DestLat         sql.NullFloat64 `db:"dest_lat"`
	DestLng         sql.NullFloat64 `db:"dest_lng"`
	PetID           sql.NullString  `db:"pet_id"`
	QuickPetName    string          `db:"quick_pet_name"`
	QuickPetSpecies string          `db:"quick_pet_species"`
	QuickPetNotes   string          `db:"quick_pet_notes"`
	Observations    string          `db:"observations"`
	CreatedAt       time.Time       `db:"created_at"`
	Confirmed       bool            `db:"confirmed"`
	AssignedGuideID sql.NullString  `db:"assigned_guide_id"`
}

type milestoneRow struct {
	ID         string    `db:"id"`
	RequestID  string    `db:"request_id"`
	Stage      string    `db:"stage"`
	RecordedAt time.Time `db:"recorded_at"`
	RecordedBy string    `db:"recorded_by"`
}

const requestColumns = `
	id, owner_user_id, service_kind, schedule_mode, scheduled_at,
	origin_text, origin_lat, origin_lng,
	dest_text, dest_lat, dest_lng,
	pet_id, quick_pet_name, quick_pet_species, quick_pet_notes,
	observations, created_at, confirmed, assigned_guide_id`

func toRequestRow(sr requests.ServiceRequest) requestRow {
	return requestRow{
		ID:              sr.ID,
		OwnerUserID:     sr.OwnerUserID,
		ServiceKind:     string(sr.Kind),
		ScheduleMode:    string(sr.ScheduleMode),
		ScheduledAt:     nullTime(sr.ScheduledAt),
		OriginText:      sr.Origin.Text,
		OriginLat:       nullFloat(sr.Origin.Lat),
		OriginLng:       nullFloat(sr.Origin.Lng),
		DestText:        sr.Destination.Text,
		DestLat:         nullFloat(sr.Destination.Lat),
		DestLng:         nullFloat(sr.Destination.Lng),
		PetID:           nullString(sr.PetID),
		QuickPetName:    sr.QuickPet.Name,
		QuickPetSpecies: sr.QuickPet.Species,
		QuickPetNotes:   sr.QuickPet.Notes,
		Observations:    sr.Observations,
		CreatedAt:       sr.CreatedAt,
		Confirmed:       sr.Confirmed,
		AssignedGuideID: nullString(sr.AssignedGuideID),
	}
}

func (r requestRow) toDomain(ms []requests.Milestone) requests.ServiceRequest {
	if ms == nil {
		ms = []requests.Milestone{}
	}
	return requests.ServiceRequest{
		ID:          r.ID,
		OwnerUserID: r.OwnerUserID,
		Details: requests.Details{
			Kind:         requests.ServiceKind(r.ServiceKind),
			ScheduleMode: requests.ScheduleMode(r.ScheduleMode),
			ScheduledAt:  timePtr(r.ScheduledAt),
			Origin: requests.Location{
				Text: r.OriginText,
				Lat:  floatPtr(r.OriginLat),
				Lng:  floatPtr(r.OriginLng),
			},
			Destination: requests.Location{
				Text: r.DestText,
				Lat:  floatPtr(r.DestLat),
				Lng:  floatPtr(r.DestLng),
			},
			PetID: r.PetID.String,
			QuickPet: requests.QuickPet{
				Name:    r.QuickPetName,
				Species: r.QuickPetSpecies,
				Notes:   r.QuickPetNotes,
			},
			Observations: r.Observations,
		},
		CreatedAt:       r.CreatedAt,
		Confirmed:       r.Confirmed,
		AssignedGuideID: r.AssignedGuideID.String,
		Milestones:      ms,
	}
}

func (m milestoneRow) toDomain() requests.Milestone {
	return requests.Milestone{
		ID:         m.ID,
		RequestID:  m.RequestID,
		Stage:      requests.Stage(m.Stage),
		RecordedAt: m.RecordedAt,
		RecordedBy: m.RecordedBy,
	}
}

func (r *RequestsRepo) Create(ctx context.Context, sr requests.ServiceRequest) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO service_requests (`+requestColumns+`)
		VALUES (
			:id, :owner_user_id, :service_kind, :schedule_mode, :scheduled_at,
			:origin_text, :origin_lat, :origin_lng,
			:dest_text, :dest_lat, :dest_lng,
			:pet_id, :quick_pet_name, :quick_pet_species, :quick_pet_notes,
			:observations, :created_at, :confirmed, :assigned_guide_id
		)
	`, toRequestRow(sr))
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestsRepo) GetByID(ctx context.Context, id string) (requests.ServiceRequest, error) {
	return getRequest(ctx, r.db, strings.TrimSpace(id), false)
}

func (r *RequestsRepo) List(ctx context.Context, f requests.ListFilter) ([]requests.ServiceRequest, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 2)

	if f.OwnerUserID != "" {
		args = append(args, f.OwnerUserID)
		where = append(where, fmt.Sprintf("owner_user_id = $%d", len(args)))
	}
	if f.AssignedGuideID != "" {
		args = append(args, f.AssignedGuideID)
		where = append(where, fmt.Sprintf("assigned_guide_id = $%d", len(args)))
	}
	if f.OnlyUnassigned {
		where = append(where, "assigned_guide_id IS NULL")
	}
	if f.OnlyConfirmed {
		where = append(where, "confirmed")
	}

	query := `SELECT ` + requestColumns + ` FROM service_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.NewestFirst {
		query += " ORDER BY created_at DESC, id DESC"
	} else {
		query += " ORDER BY created_at ASC, id ASC"
	}

	var rows []requestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	if len(rows) == 0 {
		return []requests.ServiceRequest{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	byRequest, err := loadMilestones(ctx, r.db, ids...)
	if err != nil {
		return nil, err
	}

	out := make([]requests.ServiceRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(byRequest[row.ID]))
	}
	return out, nil
}

// Mutate bloquea la fila (FOR UPDATE), decide con fn y escribe en la misma transacción.
func (r *RequestsRepo) Mutate(ctx context.Context, id string, fn requests.MutateFunc) (requests.ServiceRequest, error) {
	var out requests.ServiceRequest

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		cur, err := getRequest(ctx, tx, id, true)
		if err != nil {
			return err
		}

		m, err := fn(cur)
		if err != nil {
			return err
		}

		if err := applyMutation(ctx, tx, cur.ID, m); err != nil {
			return err
		}

		out = requests.Apply(cur, m)
		return nil
	})
	if err != nil {
		return requests.ServiceRequest{}, err
	}
	return out, nil
}

// Delete: hitos y calificación caen por ON DELETE CASCADE.
func (r *RequestsRepo) Delete(ctx context.Context, id string, guard func(requests.ServiceRequest) error) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		cur, err := getRequest(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(cur); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM service_requests WHERE id = $1`, cur.ID); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		return nil
	})
}

func applyMutation(ctx context.Context, tx *sqlx.Tx, id string, m requests.Mutation) error {
	if m.Details != nil {
		row := toRequestRow(requests.ServiceRequest{ID: id, Details: *m.Details})
		if _, err := tx.NamedExecContext(ctx, `
			UPDATE service_requests
			SET
				service_kind = :service_kind,
				schedule_mode = :schedule_mode,
				scheduled_at = :scheduled_at,
				origin_text = :origin_text,
				origin_lat = :origin_lat,
				origin_lng = :origin_lng,
				dest_text = :dest_text,
				dest_lat = :dest_lat,
				dest_lng = :dest_lng,
				pet_id = :pet_id,
				quick_pet_name = :quick_pet_name,
				quick_pet_species = :quick_pet_species,
				quick_pet_notes = :quick_pet_notes,
				observations = :observations
			WHERE id = :id
		`, row); err != nil {
			return fmt.Errorf("update request: %w", err)
		}
	}

	if m.AssignGuide != "" {
		if _, err := tx.ExecContext(ctx, `
			UPDATE service_requests SET assigned_guide_id = $2 WHERE id = $1
		`, id, m.AssignGuide); err != nil {
			return fmt.Errorf("assign guide: %w", err)
		}
	}

	if m.AddMilestone != nil {
		ms := m.AddMilestone
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO request_milestones (id, request_id, stage, recorded_at, recorded_by)
			VALUES ($1, $2, $3, $4, $5)
		`, ms.ID, id, string(ms.Stage), ms.RecordedAt, ms.RecordedBy); err != nil {
			if isUniqueViolation(err) {
				return requests.ErrDuplicateStage
			}
			return fmt.Errorf("insert milestone: %w", err)
		}
	}

	if m.Confirm {
		if _, err := tx.ExecContext(ctx, `
			UPDATE service_requests SET confirmed = TRUE WHERE id = $1
		`, id); err != nil {
			return fmt.Errorf("confirm request: %w", err)
		}
	}

	return nil
}

func getRequest(ctx context.Context, q sqlx.QueryerContext, id string, forUpdate bool) (requests.ServiceRequest, error) {
	if id == "" {
		return requests.ServiceRequest{}, requests.ErrNotFound
	}

	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var row requestRow
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return requests.ServiceRequest{}, requests.ErrNotFound
		}
		return requests.ServiceRequest{}, fmt.Errorf("get request: %w", err)
	}

	byRequest, err := loadMilestones(ctx, q, row.ID)
	if err != nil {
		return requests.ServiceRequest{}, err
	}
	return row.toDomain(byRequest[row.ID]), nil
}

func loadMilestones(ctx context.Context, q sqlx.QueryerContext, requestIDs ...string) (map[string][]requests.Milestone, error) {
	query, args, err := sqlx.In(`
		SELECT id, request_id, stage, recorded_at, recorded_by
		FROM request_milestones
		WHERE request_id IN (?)
		ORDER BY recorded_at ASC, id ASC
	`, requestIDs)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var rows []milestoneRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load milestones: %w", err)
	}

	out := make(map[string][]requests.Milestone, len(requestIDs))
	for _, m := range rows {
		out[m.RequestID] = append(out[m.RequestID], m.toDomain())
	}
	return out, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

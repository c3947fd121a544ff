package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careassign/careassign/internal/domain/catalog"
	"github.com/careassign/careassign/internal/domain/schedule"
)

// pgRepo persists assignments to Postgres. Only the schedule fields are
// stored; occurrences are recomputed on load, which yields the same sequence
// the service produced at creation because expansion is deterministic.
type pgRepo struct{ pool *pgxpool.Pool }

// NewPGRepo creates a Postgres-backed assignment repository.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const assignmentCols = `id, patient_id, assigned_by, item_id, item_kind, item_title, item_image,
	start_date, repeat_mode, repeat_count, weekdays, time_slots, instructions,
	food_timings, note, created_at`

func (r *pgRepo) Create(ctx context.Context, a *Assignment) error {
	weekdays := make([]int32, len(a.Schedule.Weekdays))
	for i, wd := range a.Schedule.Weekdays {
		weekdays[i] = int32(wd)
	}
	slots := make([]string, len(a.Schedule.TimeSlots))
	for i, s := range a.Schedule.TimeSlots {
		slots[i] = string(s)
	}
	timings := make([]string, len(a.FoodTimings))
	for i, ft := range a.FoodTimings {
		timings[i] = string(ft)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO assignment (id, patient_id, assigned_by, item_id, item_kind, item_title,
			item_image, start_date, repeat_mode, repeat_count, weekdays, time_slots,
			instructions, food_timings, note, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		a.ID, a.PatientID, a.AssignedBy, a.Item.ID, a.Item.Kind, a.Item.Title,
		a.Item.Image, a.Schedule.StartDate, a.Schedule.Repeat, a.Schedule.Count,
		weekdays, slots, a.Schedule.Instructions, timings, a.Note, a.CreatedAt)
	return err
}

func (r *pgRepo) scan(row pgx.Row) (*Assignment, error) {
	var (
		a        Assignment
		kind     string
		mode     string
		start    time.Time
		weekdays []int32
		slots    []string
		timings  []string
	)
	err := row.Scan(&a.ID, &a.PatientID, &a.AssignedBy, &a.Item.ID, &kind,
		&a.Item.Title, &a.Item.Image, &start, &mode, &a.Schedule.Count,
		&weekdays, &slots, &a.Schedule.Instructions, &timings, &a.Note,
		&a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Item.Kind = catalog.Kind(kind)
	a.Schedule.StartDate = schedule.DateOnly(start)
	a.Schedule.Repeat = schedule.RepeatMode(mode)
	for _, wd := range weekdays {
		a.Schedule.Weekdays = append(a.Schedule.Weekdays, time.Weekday(wd))
	}
	for _, s := range slots {
		a.Schedule.TimeSlots = append(a.Schedule.TimeSlots, schedule.TimeSlot(s))
	}
	for _, ft := range timings {
		a.FoodTimings = append(a.FoodTimings, FoodTiming(ft))
	}

	if occ, err := schedule.Expand(a.Schedule); err == nil {
		a.Occurrences = occ
	}
	return &a, nil
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	a, err := r.scan(r.pool.QueryRow(ctx,
		`SELECT `+assignmentCols+` FROM assignment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *pgRepo) ListByPatient(ctx context.Context, patientID string) ([]*Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+assignmentCols+` FROM assignment
		WHERE patient_id = $1 ORDER BY seq`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Assignment
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *pgRepo) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assignment WHERE id = $1`, id)
	return err
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreatePet(ctx context.Context, in Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, name, species, birth_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Species, nullTime(in.BirthDate), in.Notes, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetPet(ctx context.Context, id string) (Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, species, birth_date, notes, created_at
		FROM pets WHERE id = ?`, id)
	pet, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return pet, nil
}

func (r *SQLiteRepository) UpdatePet(ctx context.Context, in Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = ?, species = ?, birth_date = ?, notes = ?
		WHERE id = ?`,
		in.Name, in.Species, nullTime(in.BirthDate), in.Notes, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeletePet(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListPets(ctx context.Context, filter PetListFilter) ([]Pet, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, species, birth_date, notes, created_at FROM pets ORDER BY name ASC` +
		applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Pet, 0)
	for rows.Next() {
		pet, scanErr := scanPet(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, pet)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTreatment(ctx context.Context, in Treatment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatments (id, pet_id, name, dosage, frequency, start_date, end_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.PetID, in.Name, in.Dosage, in.Frequency,
		mustTime(in.StartDate), nullTime(in.EndDate), in.Notes, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTreatment(ctx context.Context, id string) (Treatment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, name, dosage, frequency, start_date, end_date, notes, created_at
		FROM treatments WHERE id = ?`, id)
	item, err := scanTreatment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Treatment{}, ErrNotFound
		}
		return Treatment{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateTreatment(ctx context.Context, in Treatment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE treatments
		SET pet_id = ?, name = ?, dosage = ?, frequency = ?, start_date = ?, end_date = ?, notes = ?
		WHERE id = ?`,
		in.PetID, in.Name, in.Dosage, in.Frequency,
		mustTime(in.StartDate), nullTime(in.EndDate), in.Notes, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTreatment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTreatments(ctx context.Context, filter TreatmentListFilter) ([]Treatment, error) {
	query := `SELECT id, pet_id, name, dosage, frequency, start_date, end_date, notes, created_at FROM treatments`
	args := make([]any, 0, 3)
	if filter.PetID != "" {
		query += ` WHERE pet_id = ?`
		args = append(args, filter.PetID)
	}
	query += ` ORDER BY start_date ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Treatment, 0)
	for rows.Next() {
		item, scanErr := scanTreatment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const taskColumns = `id, pet_id, title, type, due_date, is_complete, notes, recurring,
	rule_pattern, rule_interval, rule_weekdays, rule_month_day, rule_end_kind, rule_end_count, rule_end_date,
	completion_count, last_completed_at, next_due_date, linked_treatment_id, created_at`

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	return insertTask(ctx, r.db, in)
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET pet_id = ?, title = ?, type = ?, due_date = ?, is_complete = ?, notes = ?, recurring = ?,
			rule_pattern = ?, rule_interval = ?, rule_weekdays = ?, rule_month_day = ?,
			rule_end_kind = ?, rule_end_count = ?, rule_end_date = ?,
			completion_count = ?, last_completed_at = ?, next_due_date = ?, linked_treatment_id = ?
		WHERE id = ?`,
		in.PetID, in.Title, in.Type, mustTime(in.DueDate), boolInt(in.IsComplete), in.Notes, boolInt(in.Recurring),
		in.RulePattern, in.RuleInterval, in.RuleWeekDays, in.RuleMonthDay,
		in.RuleEndKind, in.RuleEndCount, nullTime(in.RuleEndDate),
		in.CompletionCount, nullTime(in.LastCompletedAt), mustTime(in.NextDueDate), nullString(in.LinkedTreatmentID),
		in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.PetID != "" {
		clauses = append(clauses, "pet_id = ?")
		args = append(args, filter.PetID)
	}
	if filter.TreatmentID != "" {
		clauses = append(clauses, "linked_treatment_id = ?")
		args = append(args, filter.TreatmentID)
	}
	if filter.Complete != nil {
		clauses = append(clauses, "is_complete = ?")
		args = append(args, boolInt(*filter.Complete))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY next_due_date ASC, created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ReplaceTreatmentTasks(ctx context.Context, treatmentID string, batch []Task) error {
	if treatmentID == "" {
		return errors.New("storage: treatment id is required")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tasks WHERE linked_treatment_id = ? AND is_complete = 0`, treatmentID); err != nil {
		return err
	}
	for _, task := range batch {
		if err := insertTask(ctx, tx, task); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTask(ctx context.Context, db execer, in Task) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.PetID, in.Title, in.Type, mustTime(in.DueDate), boolInt(in.IsComplete), in.Notes, boolInt(in.Recurring),
		in.RulePattern, in.RuleInterval, in.RuleWeekDays, in.RuleMonthDay,
		in.RuleEndKind, in.RuleEndCount, nullTime(in.RuleEndDate),
		in.CompletionCount, nullTime(in.LastCompletedAt), mustTime(in.NextDueDate), nullString(in.LinkedTreatmentID),
		mustTime(in.CreatedAt),
	)
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (Pet, error) {
	var out Pet
	var birth sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Species, &birth, &out.Notes, &created); err != nil {
		return Pet{}, err
	}
	birthDate, err := parseNullableTime(birth)
	if err != nil {
		return Pet{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Pet{}, err
	}
	out.BirthDate = birthDate
	out.CreatedAt = createdAt
	return out, nil
}

func scanTreatment(s scanner) (Treatment, error) {
	var out Treatment
	var start string
	var end sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.PetID, &out.Name, &out.Dosage, &out.Frequency, &start, &end, &out.Notes, &created); err != nil {
		return Treatment{}, err
	}
	startDate, err := parseRequiredTime(start)
	if err != nil {
		return Treatment{}, err
	}
	endDate, err := parseNullableTime(end)
	if err != nil {
		return Treatment{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Treatment{}, err
	}
	out.StartDate = startDate
	out.EndDate = endDate
	out.CreatedAt = createdAt
	return out, nil
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var due string
	var isComplete int
	var recurring int
	var ruleEnd sql.NullString
	var lastCompleted sql.NullString
	var nextDue string
	var linked sql.NullString
	var created string
	if err := s.Scan(
		&out.ID, &out.PetID, &out.Title, &out.Type, &due, &isComplete, &out.Notes, &recurring,
		&out.RulePattern, &out.RuleInterval, &out.RuleWeekDays, &out.RuleMonthDay,
		&out.RuleEndKind, &out.RuleEndCount, &ruleEnd,
		&out.CompletionCount, &lastCompleted, &nextDue, &linked, &created,
	); err != nil {
		return Task{}, err
	}
	dueDate, err := parseRequiredTime(due)
	if err != nil {
		return Task{}, err
	}
	ruleEndDate, err := parseNullableTime(ruleEnd)
	if err != nil {
		return Task{}, err
	}
	lastCompletedAt, err := parseNullableTime(lastCompleted)
	if err != nil {
		return Task{}, err
	}
	nextDueDate, err := parseRequiredTime(nextDue)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.DueDate = dueDate
	out.IsComplete = isComplete == 1
	out.Recurring = recurring == 1
	out.RuleEndDate = ruleEndDate
	out.LastCompletedAt = lastCompletedAt
	out.NextDueDate = nextDueDate
	out.LinkedTreatmentID = linked.String
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

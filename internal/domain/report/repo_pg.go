package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skindx/skindx/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a Postgres-backed report repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const reportCols = `id, patient_id, doctor_id, report_name, ai_report,
	custom_report, doctor_notes, status, created_at, updated_at`

func scanReport(row pgx.Row) (*Report, error) {
	var (
		rep        Report
		status     string
		aiJSON     []byte
		customJSON []byte
	)
	err := row.Scan(&rep.ID, &rep.PatientID, &rep.DoctorID, &rep.ReportName,
		&aiJSON, &customJSON, &rep.DoctorNotes, &status, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rep.Status = Status(status)
	if err := json.Unmarshal(aiJSON, &rep.AIReport); err != nil {
		return nil, fmt.Errorf("decode ai_report: %w", err)
	}
	if len(customJSON) > 0 {
		var custom CustomReport
		if err := json.Unmarshal(customJSON, &custom); err != nil {
			return nil, fmt.Errorf("decode custom_report: %w", err)
		}
		rep.CustomReport = &custom
	}
	return &rep, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	rep.ID = uuid.New()
	aiJSON, err := json.Marshal(rep.AIReport)
	if err != nil {
		return fmt.Errorf("encode ai_report: %w", err)
	}
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO report (id, patient_id, report_name, ai_report, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		rep.ID, rep.PatientID, rep.ReportName, aiJSON, string(rep.Status))
	if err := row.Scan(&rep.CreatedAt, &rep.UpdatedAt); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	rep, err := scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM report WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return rep, nil
}

func (r *repoPG) list(ctx context.Context, sql string, arg interface{}) ([]*Report, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, arg)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	var items []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		items = append(items, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	return r.list(ctx,
		`SELECT `+reportCols+` FROM report WHERE patient_id = $1 ORDER BY created_at DESC`,
		patientID)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Report, error) {
	return r.list(ctx,
		`SELECT `+reportCols+` FROM report WHERE doctor_id = $1 ORDER BY created_at DESC`,
		doctorID)
}

// UpdateStatus applies the patch in a single conditional UPDATE. The
// precondition is part of the WHERE clause, so it is evaluated by the
// database at write time; a stale command matches zero rows.
func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, pre Precondition, patch Patch) (*Report, error) {
	set := `status = $2, updated_at = NOW()`
	args := []interface{}{id, string(patch.Status)}

	if patch.DoctorID != nil {
		args = append(args, *patch.DoctorID)
		set += fmt.Sprintf(`, doctor_id = $%d`, len(args))
	}
	if patch.CustomReport != nil {
		customJSON, err := json.Marshal(patch.CustomReport)
		if err != nil {
			return nil, fmt.Errorf("encode custom_report: %w", err)
		}
		args = append(args, customJSON)
		set += fmt.Sprintf(`, custom_report = $%d`, len(args))
	}
	if patch.DoctorNotes != nil {
		args = append(args, *patch.DoctorNotes)
		set += fmt.Sprintf(`, doctor_notes = $%d`, len(args))
	}

	args = append(args, string(pre.Status))
	where := fmt.Sprintf(`id = $1 AND status = $%d`, len(args))
	if pre.Unassigned {
		where += ` AND doctor_id IS NULL`
	}
	if pre.DoctorID != nil {
		args = append(args, *pre.DoctorID)
		where += fmt.Sprintf(` AND doctor_id = $%d`, len(args))
	}

	sql := `UPDATE report SET ` + set + ` WHERE ` + where + ` RETURNING ` + reportCols
	rep, err := scanReport(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err == nil {
		return rep, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeErr(err)
	}

	// Zero rows matched: distinguish a missing report from a stale one.
	var exists bool
	checkErr := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM report WHERE id = $1)`, id).Scan(&exists)
	if checkErr != nil {
		return nil, storeErr(checkErr)
	}
	if !exists {
		return nil, fmt.Errorf("%w: report %s", ErrNotFound, id)
	}
	return nil, fmt.Errorf("%w: report %s changed since it was read", ErrPreconditionFailed, id)
}

package profile

import (
	"context"
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

type patientRepoPG struct{ pool *pgxpool.Pool }

// NewPatientRepoPG creates a Postgres-backed patient repository.
func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (id, name, age, sex, skin_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		p.ID, p.Name, p.Age, p.Sex, p.SkinType)
	return row.Scan(&p.CreatedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var p Patient
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, age, sex, skin_type, created_at
		FROM patient WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Age, &p.Sex, &p.SkinType, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: patient %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type doctorRepoPG struct{ pool *pgxpool.Pool }

// NewDoctorRepoPG creates a Postgres-backed doctor repository.
func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.VerificationStatus == "" {
		d.VerificationStatus = VerificationPending
	}
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor (id, name, speciality, verification_status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		d.ID, d.Name, d.Speciality, string(d.VerificationStatus))
	return row.Scan(&d.CreatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	var (
		d      Doctor
		status string
	)
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, speciality, verification_status, created_at
		FROM doctor WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Speciality, &status, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: doctor %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	d.VerificationStatus = VerificationStatus(status)
	return &d, nil
}

func (r *doctorRepoPG) ListApproved(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM doctor WHERE verification_status = 'approved'`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, speciality, verification_status, created_at
		FROM doctor WHERE verification_status = 'approved'
		ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Doctor
	for rows.Next() {
		var (
			d      Doctor
			status string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Speciality, &status, &d.CreatedAt); err != nil {
			return nil, 0, err
		}
		d.VerificationStatus = VerificationStatus(status)
		items = append(items, &d)
	}
	return items, total, rows.Err()
}

func (r *doctorRepoPG) UpdateVerification(ctx context.Context, id uuid.UUID, status VerificationStatus) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE doctor SET verification_status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: doctor %s", ErrNotFound, id)
	}
	return nil
}

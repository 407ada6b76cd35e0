package database

import (
	"context"
	"database/sql"

	"github.com/rollcall-io/rollcall/internal/models"
)

func scanDepartment(row *sql.Row) (*models.Department, error) {
	var d models.Department
	err := row.Scan(&d.ID, &d.DeptName, &d.SubmittedBy)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (db *DB) CreateDepartment(ctx context.Context, d *models.Department) error {
	id, err := db.insert(ctx,
		"INSERT INTO departments (dept_name, submitted_by) VALUES (?, ?)",
		d.DeptName, d.SubmittedBy,
	)
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

func (db *DB) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT id, dept_name, submitted_by FROM departments WHERE id = ?"), id)
	return scanDepartment(row)
}

func (db *DB) GetDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT id, dept_name, submitted_by FROM departments WHERE dept_name = ?"), name)
	return scanDepartment(row)
}

func (db *DB) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT id, dept_name, submitted_by FROM departments ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.DeptName, &d.SubmittedBy); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

func (db *DB) UpdateDepartment(ctx context.Context, d *models.Department) error {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE departments SET dept_name = ?, submitted_by = ? WHERE id = ?"),
		d.DeptName, d.SubmittedBy, d.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (db *DB) DeleteDepartment(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM departments WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

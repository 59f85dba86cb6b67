package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"fleetbooking/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) Create(u *db.User) error {
	query := `
		INSERT INTO users (name, email, phone, password_hash, role, company_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.CompanyID).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	u.Active = true
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	query := `SELECT id, name, email, phone, password_hash, role, company_id, active, created_at FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CompanyID, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email '%s' not found: %w", email, err)
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id int) (*db.User, error) {
	var u db.User
	query := `SELECT id, name, email, phone, password_hash, role, company_id, active, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CompanyID, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List(role string) ([]*db.User, error) {
	query := `SELECT id, name, email, phone, password_hash, role, company_id, active, created_at FROM users`
	args := []interface{}{}
	if role != "" {
		args = append(args, role)
		query += " WHERE role = $1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*db.User
	for rows.Next() {
		var u db.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CompanyID, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetActive(id int, active bool) error {
	_, err := r.DB.Exec(`UPDATE users SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating user active flag: %w", err)
	}
	return nil
}

func (r *UserRepository) CreateCompany(c *db.Company) error {
	query := `
		INSERT INTO companies (name, contact_name, contact_phone, contact_email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query, c.Name, c.ContactName, c.ContactPhone, c.ContactEmail).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting company: %w", err)
	}
	c.Active = true
	return nil
}

func (r *UserRepository) ListCompanies() ([]*db.Company, error) {
	rows, err := r.DB.Query(`SELECT id, name, contact_name, contact_phone, contact_email, active, created_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*db.Company
	for rows.Next() {
		var c db.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactName, &c.ContactPhone, &c.ContactEmail, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning company: %w", err)
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

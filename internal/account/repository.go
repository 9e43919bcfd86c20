package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists identity records, one table per role.
type Repository interface {
	Create(ctx context.Context, acct Account) error
	FindByEmail(ctx context.Context, role Role, email string) (Account, error)
	FindByID(ctx context.Context, role Role, id string) (Account, error)
}

// PostgresRepository implements Repository using PostgreSQL. Each role maps to
// its own table (students, teachers, admins) with a unique index on email.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Create inserts a new identity record into the role's table.
func (r *PostgresRepository) Create(ctx context.Context, acct Account) error {
	acctID, err := uuid.Parse(acct.ID)
	if err != nil {
		return err
	}

	switch acct.Role {
	case RoleStudent:
		_, err = r.db.Exec(ctx, `INSERT INTO students
            (id, last_name, first_name, email, phone, password_hash, birth_date, gender, class_level, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			acctID, acct.LastName, acct.FirstName, acct.Email, acct.Phone,
			acct.PasswordHash, acct.BirthDate.UTC(), acct.Gender, acct.ClassLevel, acct.CreatedAt.UTC())
	case RoleTeacher:
		active := acct.Active != nil && *acct.Active
		_, err = r.db.Exec(ctx, `INSERT INTO teachers
            (id, last_name, first_name, email, phone, password_hash, birth_date, gender,
             education_level, diploma_photo, subject, profile_photo, description, active, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			acctID, acct.LastName, acct.FirstName, acct.Email, acct.Phone,
			acct.PasswordHash, acct.BirthDate.UTC(), acct.Gender,
			acct.EducationLevel, acct.DiplomaPhoto, acct.Subject, acct.ProfilePhoto,
			acct.Description, active, acct.CreatedAt.UTC())
	case RoleAdmin:
		_, err = r.db.Exec(ctx, `INSERT INTO admins
            (id, last_name, first_name, email, phone, password_hash, birth_date, gender, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			acctID, acct.LastName, acct.FirstName, acct.Email, acct.Phone,
			acct.PasswordHash, acct.BirthDate.UTC(), acct.Gender, acct.CreatedAt.UTC())
	default:
		return errors.New("unknown role " + string(acct.Role))
	}

	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// FindByEmail fetches a record by email within the role's table.
func (r *PostgresRepository) FindByEmail(ctx context.Context, role Role, email string) (Account, error) {
	return r.findOne(ctx, role, "email", email)
}

// FindByID fetches a record by identifier within the role's table.
func (r *PostgresRepository) FindByID(ctx context.Context, role Role, id string) (Account, error) {
	acctID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	return r.findOne(ctx, role, "id", acctID)
}

func (r *PostgresRepository) findOne(ctx context.Context, role Role, column string, value any) (Account, error) {
	var (
		row  pgx.Row
		acct Account
		err  error
	)

	switch role {
	case RoleStudent:
		row = r.db.QueryRow(ctx, `SELECT id, last_name, first_name, email, phone, password_hash,
            birth_date, gender, class_level, created_at FROM students WHERE `+column+` = $1`, value)
		acct, err = scanStudent(row)
	case RoleTeacher:
		row = r.db.QueryRow(ctx, `SELECT id, last_name, first_name, email, phone, password_hash,
            birth_date, gender, education_level, diploma_photo, subject, profile_photo, description,
            active, created_at FROM teachers WHERE `+column+` = $1`, value)
		acct, err = scanTeacher(row)
	case RoleAdmin:
		row = r.db.QueryRow(ctx, `SELECT id, last_name, first_name, email, phone, password_hash,
            birth_date, gender, created_at FROM admins WHERE `+column+` = $1`, value)
		acct, err = scanAdmin(row)
	default:
		return Account{}, errors.New("unknown role " + string(role))
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acct.Role = role
	return acct, nil
}

func scanStudent(row pgx.Row) (Account, error) {
	var (
		acct      Account
		id        uuid.UUID
		birth     time.Time
		createdAt time.Time
	)
	if err := row.Scan(&id, &acct.LastName, &acct.FirstName, &acct.Email, &acct.Phone,
		&acct.PasswordHash, &birth, &acct.Gender, &acct.ClassLevel, &createdAt); err != nil {
		return Account{}, err
	}
	acct.ID = id.String()
	acct.BirthDate = birth.UTC()
	acct.CreatedAt = createdAt.UTC()
	return acct, nil
}

func scanTeacher(row pgx.Row) (Account, error) {
	var (
		acct      Account
		id        uuid.UUID
		birth     time.Time
		createdAt time.Time
		active    bool
	)
	if err := row.Scan(&id, &acct.LastName, &acct.FirstName, &acct.Email, &acct.Phone,
		&acct.PasswordHash, &birth, &acct.Gender, &acct.EducationLevel, &acct.DiplomaPhoto,
		&acct.Subject, &acct.ProfilePhoto, &acct.Description, &active, &createdAt); err != nil {
		return Account{}, err
	}
	acct.ID = id.String()
	acct.BirthDate = birth.UTC()
	acct.CreatedAt = createdAt.UTC()
	acct.Active = &active
	return acct, nil
}

func scanAdmin(row pgx.Row) (Account, error) {
	var (
		acct      Account
		id        uuid.UUID
		birth     time.Time
		createdAt time.Time
	)
	if err := row.Scan(&id, &acct.LastName, &acct.FirstName, &acct.Email, &acct.Phone,
		&acct.PasswordHash, &birth, &acct.Gender, &createdAt); err != nil {
		return Account{}, err
	}
	acct.ID = id.String()
	acct.BirthDate = birth.UTC()
	acct.CreatedAt = createdAt.UTC()
	return acct, nil
}

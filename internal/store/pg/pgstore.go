package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"complainthub.org/internal/auth"
	"complainthub.org/internal/complaint"
	"complainthub.org/internal/ids"
)

const uniqueViolation = "23505"

// Store wraps a Postgres connection pool and exposes the user and complaint
// stores backed by it.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres via the pgx stdlib driver.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewStore wraps an existing handle. Used by tests with sqlmock.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Users returns the Postgres-backed user store.
func (s *Store) Users() *Users { return &Users{db: s.db} }

// Complaints returns the Postgres-backed complaint store.
func (s *Store) Complaints() *Complaints { return &Complaints{db: s.db} }

// Users ---------------------------------------------------------------------

type Users struct{ db *sql.DB }

var _ auth.UserStore = (*Users)(nil)

func (s *Users) Create(ctx context.Context, u *auth.User) error {
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`insert into users(id, username, email, password_hash, role, created_at) values($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return auth.ErrAlreadyExists
	}
	return err
}

func (s *Users) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return s.findBy(ctx, `select id, username, email, password_hash, role, created_at from users where id=$1`, id)
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findBy(ctx, `select id, username, email, password_hash, role, created_at from users where email=$1`, email)
}

func (s *Users) FindByIDs(ctx context.Context, userIDs []string) (map[string]*auth.User, error) {
	out := make(map[string]*auth.User, len(userIDs))
	for _, id := range userIDs {
		u, err := s.FindByID(ctx, id)
		if errors.Is(err, auth.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = u
	}
	return out, nil
}

func (s *Users) findBy(ctx context.Context, query, arg string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	var u auth.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Complaints ----------------------------------------------------------------

type Complaints struct{ db *sql.DB }

var _ complaint.Store = (*Complaints)(nil)

func (s *Complaints) Create(ctx context.Context, c *complaint.Complaint) error {
	if c.ID == "" {
		c.ID = ids.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`insert into complaints(id, title, description, department, priority, status, user_id, created_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.Title, c.Description, c.Department, c.Priority, c.Status, c.OwnerID, c.CreatedAt,
	)
	return err
}

func (s *Complaints) Find(ctx context.Context, id string) (*complaint.Complaint, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, title, description, department, priority, status, user_id, created_at from complaints where id=$1`, id)
	var c complaint.Complaint
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Department, &c.Priority, &c.Status, &c.OwnerID, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, complaint.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Complaints) List(ctx context.Context) ([]*complaint.Complaint, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, title, description, department, priority, status, user_id, created_at from complaints order by created_at asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*complaint.Complaint
	for rows.Next() {
		var c complaint.Complaint
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Department, &c.Priority, &c.Status, &c.OwnerID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (s *Complaints) Update(ctx context.Context, c *complaint.Complaint) error {
	res, err := s.db.ExecContext(ctx,
		`update complaints set title=$2, description=$3, department=$4, priority=$5, status=$6 where id=$1`,
		c.ID, c.Title, c.Description, c.Department, c.Priority, c.Status,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return complaint.ErrNotFound
	}
	return nil
}

func (s *Complaints) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from complaints where id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return complaint.ErrNotFound
	}
	return nil
}

func (s *Complaints) CountTotal(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `select count(*) from complaints`).Scan(&n)
	return n, err
}

func (s *Complaints) CountByStatus(ctx context.Context) ([]complaint.Bucket, error) {
	return s.countBy(ctx, `select status, count(*) from complaints group by status order by count(*) desc, status asc`)
}

func (s *Complaints) CountByDepartment(ctx context.Context) ([]complaint.Bucket, error) {
	return s.countBy(ctx, `select department, count(*) from complaints group by department order by count(*) desc, department asc`)
}

func (s *Complaints) CountByPriority(ctx context.Context) ([]complaint.Bucket, error) {
	return s.countBy(ctx, `select priority, count(*) from complaints group by priority order by count(*) desc, priority asc`)
}

func (s *Complaints) TopOwners(ctx context.Context, limit int) ([]complaint.OwnerCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`select user_id, count(*) from complaints group by user_id order by count(*) desc, user_id asc limit $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []complaint.OwnerCount
	for rows.Next() {
		var oc complaint.OwnerCount
		if err := rows.Scan(&oc.OwnerID, &oc.Count); err != nil {
			return nil, err
		}
		out = append(out, oc)
	}
	return out, rows.Err()
}

func (s *Complaints) countBy(ctx context.Context, query string) ([]complaint.Bucket, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []complaint.Bucket
	for rows.Next() {
		var b complaint.Bucket
		if err := rows.Scan(&b.Key, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

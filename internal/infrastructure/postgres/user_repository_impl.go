package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/repository"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

// ErrNotFound is returned when a row does not exist. The application layer
// maps it to a 404.
var ErrNotFound = errors.New("not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	var phone *string
	if p := u.Phone(); p != nil {
		v := p.Value()
		phone = &v
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, phone, status, email_verified, address_ids, role_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID(), u.Email().Value(), u.PasswordHash(), phone, int16(u.Status()),
		u.EmailVerified(), u.AddressIDs(), u.RoleIDs(), u.CreatedAt(), u.UpdatedAt())
	return err
}

const userColumns = `id, email, password_hash, phone, status, email_verified, address_ids, role_ids, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	var phone *string
	if p := u.Phone(); p != nil {
		v := p.Value()
		phone = &v
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, phone = $3, status = $4,
		    email_verified = $5, address_ids = $6, role_ids = $7, updated_at = $8
		WHERE id = $9
	`, u.Email().Value(), u.PasswordHash(), phone, int16(u.Status()),
		u.EmailVerified(), u.AddressIDs(), u.RoleIDs(), u.UpdatedAt(), u.ID())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanUser rebuilds the aggregate via the rehydration path so loads never
// re-run transition validation or emit events.
func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, emailStr, hash   string
		phoneStr             *string
		status               int16
		verified             bool
		addressIDs, roleIDs  []string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &emailStr, &hash, &phoneStr, &status, &verified,
		&addressIDs, &roleIDs, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	email, err := valueobject.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}
	var phone *valueobject.PhoneNumber
	if phoneStr != nil && *phoneStr != "" {
		p, err := valueobject.NewPhoneNumber(*phoneStr)
		if err != nil {
			return nil, err
		}
		phone = &p
	}

	return entity.RehydrateUser(id, email, hash, phone, entity.UserStatus(status),
		verified, addressIDs, roleIDs, createdAt, updatedAt), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

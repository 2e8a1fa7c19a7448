package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

const userColumns = "id,email,username,full_name,password_hash,role,is_active,created_at,updated_at"

// UserRepo provides CRUD access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  Email and username are
// normalized to lower case before insertion.
func (r *UserRepo) Create(ctx context.Context, email, username, fullName, password, role string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    username = strings.ToLower(strings.TrimSpace(username))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, username, full_name, password_hash, role) VALUES (?,?,?,?,?)",
        email, username, fullName, hash, role)
    if err != nil {
        switch {
        case isDuplicate(err, "email"):
            return 0, ErrEmailExists
        case isDuplicate(err, "username"):
            return 0, ErrUsernameExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.getWhere(ctx, "email=?", email)
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
    username = strings.ToLower(strings.TrimSpace(username))
    return r.getWhere(ctx, "username=?", username)
}

// GetByCredential resolves a login identifier that has already been
// classified as an email or a username into a user row.  Classification
// happens once at the boundary (utils.ClassifyCredential); no string
// sniffing occurs here.
func (r *UserRepo) GetByCredential(ctx context.Context, kind utils.CredentialKind, identifier string) (model.User, error) {
    if kind == utils.CredentialEmail {
        return r.GetByEmail(ctx, identifier)
    }
    return r.GetByUsername(ctx, identifier)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return r.getWhere(ctx, "id=?", id)
}

func (r *UserRepo) getWhere(ctx context.Context, where string, arg any) (model.User, error) {
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE "+where+" LIMIT 1", arg).
        Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

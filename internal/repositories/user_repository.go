// Package repositories provides MySQL data access for the portal backend
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/schoolhub/portal/internal/models"
	"go.uber.org/zap"
)

// UserRecord is a user row together with the stored password hash. It never
// leaves the service layer.
type UserRecord struct {
	models.User
	PasswordHash string
}

// userRepository implements data access for the users table
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// GetByEmail retrieves a user with the stored password hash by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	query := `
		SELECT id, user_id, first_name, last_name, email, phone_number, profile_image, status, role, password_hash
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	rec := &UserRecord{}
	var phone, profileImage, status sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&phone,
		&profileImage,
		&status,
		&rec.Role,
		&rec.PasswordHash,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	rec.PhoneNumber = phone.String
	rec.ProfileImage = profileImage.String
	rec.Status = status.String
	return rec, nil
}

// GetSchools retrieves the schools a user is affiliated with, current school
// first
func (r *userRepository) GetSchools(ctx context.Context, userID int64) ([]models.School, error) {
	query := `
		SELECT s.id, s.name, s.code, s.type, s.status
		FROM schools s
		INNER JOIN user_schools us ON us.school_id = s.id
		WHERE us.user_id = ?
		ORDER BY us.is_current DESC, s.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get user schools", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to get user schools: %w", err)
	}
	defer rows.Close()

	var schools []models.School
	for rows.Next() {
		var school models.School
		var schoolType, status sql.NullString
		if err := rows.Scan(&school.ID, &school.Name, &school.Code, &schoolType, &status); err != nil {
			r.logger.Error("failed to scan school row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan school row: %w", err)
		}
		school.Type = schoolType.String
		school.Status = status.String
		schools = append(schools, school)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate school rows: %w", err)
	}

	return schools, nil
}

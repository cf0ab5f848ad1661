package services

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/users/models"
	"github.com/mgarciapsic/clinica-backend/pkg/utils"
)

type UserService struct {
	DB *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{DB: db}
}

// Authenticate verifies the credentials and issues a 24h JWT.
func (s *UserService) Authenticate(email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, httpres.NewValidationError("email", "email and password are required")
	}

	var u models.User
	var hash string
	err := s.DB.QueryRow(`
		SELECT id, name, email, password, COALESCE(nif, ''), COALESCE(address, ''),
		       COALESCE(city, ''), COALESCE(postal_code, ''), COALESCE(phone, '')
		FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.NIF, &u.Address, &u.City, &u.PostalCode, &u.Phone)
	if err == sql.ErrNoRows {
		return "", nil, &httpres.AuthError{Message: "invalid credentials"}
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, &httpres.AuthError{Message: "invalid credentials"}
	}

	token, err := utils.GenerateJWTToken(u.ID, u.Email, u.Name, time.Now().Add(24*time.Hour))
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// GetUser returns the profile used for invoice letterhead data.
func (s *UserService) GetUser(id int) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRow(`
		SELECT id, name, email, COALESCE(nif, ''), COALESCE(address, ''),
		       COALESCE(city, ''), COALESCE(postal_code, ''), COALESCE(phone, '')
		FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.NIF, &u.Address, &u.City, &u.PostalCode, &u.Phone)
	if err == sql.ErrNoRows {
		return nil, &httpres.NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

package dbhelper

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/models"
)

func CreateUser(tx *sqlx.Tx, name, email, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`INSERT INTO users (name, email, password, created_by) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, email, hashedPassword, uuid.Nil).Scan(&id)
	return id, err
}

func IsUserExists(email string) (bool, error) {
	var count int
	err := database.QuikBite.QueryRow(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).Scan(&count)
	return count > 0, err
}

func AssignRole(tx *sqlx.Tx, userID uuid.UUID, role models.Role) error {
	_, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
	return err
}

func GetUserByEmail(email string) (uuid.UUID, error) {
	var userID uuid.UUID

	err := database.QuikBite.QueryRow(`
		SELECT id FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&userID)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

func GetUserByPassword(email, password string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var name string
	var hashedPassword string

	err := database.QuikBite.QueryRow(`
		SELECT id, name, password FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&id, &name, &hashedPassword)
	if err != nil {
		return uuid.Nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil {
		return uuid.Nil, "", fmt.Errorf("incorrect password")
	}

	return id, name, nil
}

func GetUserRoles(userID uuid.UUID) ([]string, error) {
	var roles []string
	err := database.QuikBite.Select(&roles, `
		SELECT role FROM user_roles
		WHERE user_id = $1 AND archived_at IS NULL`, userID)
	return roles, err
}

func AddAddress(userID uuid.UUID, address string, latitude, longitude float64) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.QuikBite.QueryRow(`
		INSERT INTO addresses (user_id, address, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, userID, address, latitude, longitude).Scan(&id)
	return id, err
}

func GetUserEmailByID(userID uuid.UUID) (string, error) {
	var email string
	err := database.QuikBite.QueryRow(`
		SELECT email FROM users WHERE id = $1 AND archived_at IS NULL`, userID).Scan(&email)
	return email, err
}

func ListUsers() ([]models.User, error) {
	var users []models.User
	err := database.QuikBite.Select(&users, `
		SELECT id, name, email, password, created_at, archived_at FROM users
		WHERE archived_at IS NULL
		ORDER BY created_at DESC`)
	return users, err
}

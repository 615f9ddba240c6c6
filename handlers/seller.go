package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/database/dbhelper"
	"github.com/quikbite/quikbite/models"
	"github.com/quikbite/quikbite/utils"
)

// CreateSeller provisions a seller account: the user, the seller role and
// the seller profile land together or not at all.
func CreateSeller(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.DisplayName == "" {
		http.Error(w, "all fields are required", http.StatusBadRequest)
		return
	}

	exists, err := dbhelper.IsUserExists(req.Email)
	if err != nil {
		http.Error(w, "failed to check user existence", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "user already exists", http.StatusBadRequest)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	var userID, sellerID uuid.UUID
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		userID, err = dbhelper.CreateUser(tx, req.Name, req.Email, hashedPassword)
		if err != nil {
			logrus.Printf("failed to create seller user, error: %v", err)
			return err
		}

		if err = dbhelper.AssignRole(tx, userID, models.RoleSeller); err != nil {
			logrus.Printf("failed to assign seller role, error: %v", err)
			return err
		}

		sellerID, err = dbhelper.CreateSeller(tx, userID, req.DisplayName)
		if err != nil {
			logrus.Printf("failed to create seller profile, error: %v", err)
			return err
		}
		return nil
	})
	if txErr != nil {
		http.Error(w, "failed to create seller", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":   "Seller created",
		"user_id":   userID.String(),
		"seller_id": sellerID.String(),
	})
}

func ListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := dbhelper.ListSellers()
	if err != nil {
		http.Error(w, "failed to query sellers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sellers)
}

func ArchiveSeller(w http.ResponseWriter, r *http.Request) {
	sellerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid seller ID", http.StatusBadRequest)
		return
	}

	if err := dbhelper.ArchiveSeller(sellerID); err != nil {
		http.Error(w, "failed to archive seller", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Seller archived",
	})
}

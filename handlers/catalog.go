package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/quikbite/quikbite/database/dbhelper"
	"github.com/quikbite/quikbite/middlewares"
	"github.com/quikbite/quikbite/models"
)

const maxImageUploadBytes = 5 << 20

func ListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := dbhelper.ListAreas()
	if err != nil {
		http.Error(w, "failed to query areas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(areas)
}

func CreateArea(w http.ResponseWriter, r *http.Request) {
	type Input struct {
		Name string `json:"name"`
		City string `json:"city"`
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.City == "" {
		http.Error(w, "name and city are required", http.StatusBadRequest)
		return
	}

	id, err := dbhelper.CreateArea(input.Name, input.City)
	if err != nil {
		http.Error(w, "failed to create area", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Area created",
		"area_id": id.String(),
	})
}

func ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := dbhelper.ListCategories()
	if err != nil {
		http.Error(w, "failed to query categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	type Input struct {
		Name string `json:"name"`
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	id, err := dbhelper.CreateCategory(input.Name)
	if err != nil {
		http.Error(w, "failed to create category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":     "Category created",
		"category_id": id.String(),
	})
}

func ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := dbhelper.ListRestaurants()
	if err != nil {
		http.Error(w, "failed to query restaurants", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restaurants)
}

func GetMenuByRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid restaurant ID", http.StatusBadRequest)
		return
	}

	items, err := dbhelper.ListMenuByRestaurant(restaurantID)
	if err != nil {
		http.Error(w, "failed to fetch menu", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	seller, ok := requireSeller(w, r)
	if !ok {
		return
	}

	type Input struct {
		AreaID      uuid.UUID `json:"area_id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Address     string    `json:"address"`
		Latitude    float64   `json:"latitude"`
		Longitude   float64   `json:"longitude"`
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.AreaID == uuid.Nil {
		http.Error(w, "name and area_id are required", http.StatusBadRequest)
		return
	}

	id, err := dbhelper.CreateRestaurant(&models.Restaurant{
		SellerID:    seller.ID,
		AreaID:      input.AreaID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	})
	if err != nil {
		http.Error(w, "failed to create restaurant", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":       "Restaurant created",
		"restaurant_id": id.String(),
	})
}

func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	seller, ok := requireSeller(w, r)
	if !ok {
		return
	}

	type Input struct {
		RestaurantID uuid.UUID  `json:"restaurant_id"`
		CategoryID   *uuid.UUID `json:"category_id"`
		Name         string     `json:"name"`
		Description  string     `json:"description"`
		Price        float64    `json:"price"`
		IsAvailable  *bool      `json:"is_available"`
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Price < 0 {
		http.Error(w, "name and a non-negative price are required", http.StatusBadRequest)
		return
	}

	if !sellerOwnsRestaurant(w, seller.ID, input.RestaurantID) {
		return
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	id, err := dbhelper.CreateMenuItem(&models.MenuItem{
		RestaurantID: input.RestaurantID,
		CategoryID:   input.CategoryID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		IsAvailable:  available,
	})
	if err != nil {
		http.Error(w, "failed to create menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":      "Menu item created",
		"menu_item_id": id.String(),
	})
}

func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	seller, ok := requireSeller(w, r)
	if !ok {
		return
	}

	menuItemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid menu item ID", http.StatusBadRequest)
		return
	}

	item, err := dbhelper.GetMenuItemByID(menuItemID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to fetch menu item", http.StatusInternalServerError)
		return
	}

	if !sellerOwnsRestaurant(w, seller.ID, item.RestaurantID) {
		return
	}

	type Input struct {
		CategoryID  *uuid.UUID `json:"category_id"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Price       float64    `json:"price"`
		IsAvailable bool       `json:"is_available"`
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Price < 0 {
		http.Error(w, "name and a non-negative price are required", http.StatusBadRequest)
		return
	}

	item.CategoryID = input.CategoryID
	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.IsAvailable = input.IsAvailable

	if err := dbhelper.UpdateMenuItem(item); err != nil {
		http.Error(w, "failed to update menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Menu item updated",
	})
}

func UploadMenuItemImage(w http.ResponseWriter, r *http.Request) {
	seller, ok := requireSeller(w, r)
	if !ok {
		return
	}

	menuItemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid menu item ID", http.StatusBadRequest)
		return
	}

	item, err := dbhelper.GetMenuItemByID(menuItemID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to fetch menu item", http.StatusInternalServerError)
		return
	}

	if !sellerOwnsRestaurant(w, seller.ID, item.RestaurantID) {
		return
	}

	if objectStore == nil {
		http.Error(w, "image storage not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	key := fmt.Sprintf("menu-items/%s%s", menuItemID, filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	url, err := objectStore.Put(r.Context(), key, contentType, file)
	if err != nil {
		logrus.Printf("failed to upload menu item image, error: %v", err)
		http.Error(w, "failed to upload image", http.StatusBadGateway)
		return
	}

	if err := dbhelper.SetMenuItemImage(menuItemID, url); err != nil {
		http.Error(w, "failed to save image URL", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":   "Image uploaded",
		"image_url": url,
	})
}

func SetPayoutAccount(w http.ResponseWriter, r *http.Request) {
	seller, ok := requireSeller(w, r)
	if !ok {
		return
	}

	type Input struct {
		PayoutAccountID string `json:"payout_account_id"`
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if input.PayoutAccountID == "" {
		http.Error(w, "payout_account_id is required", http.StatusBadRequest)
		return
	}

	if err := dbhelper.SetPayoutAccount(seller.ID, input.PayoutAccountID); err != nil {
		http.Error(w, "failed to save payout account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Payout account saved",
	})
}

func requireSeller(w http.ResponseWriter, r *http.Request) (*models.Seller, bool) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	seller, err := dbhelper.GetSellerByUserID(claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "no seller profile for this account", http.StatusForbidden)
		return nil, false
	} else if err != nil {
		http.Error(w, "failed to fetch seller profile", http.StatusInternalServerError)
		return nil, false
	}
	return seller, true
}

func sellerOwnsRestaurant(w http.ResponseWriter, sellerID, restaurantID uuid.UUID) bool {
	restaurant, err := dbhelper.GetRestaurantByID(restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "restaurant not found", http.StatusNotFound)
		return false
	} else if err != nil {
		http.Error(w, "failed to fetch restaurant", http.StatusInternalServerError)
		return false
	}
	if restaurant.SellerID != sellerID {
		http.Error(w, "forbidden: not your restaurant", http.StatusForbidden)
		return false
	}
	return true
}

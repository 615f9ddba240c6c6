package models

import (
	"time"

	"github.com/google/uuid"
)

type Area struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	City       string     `db:"city" json:"city"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

type Category struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

type Seller struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	UserID          uuid.UUID  `db:"user_id" json:"user_id"`
	DisplayName     string     `db:"display_name" json:"display_name"`
	PayoutAccountID *string    `db:"payout_account_id" json:"payout_account_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt      *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

type Restaurant struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	SellerID    uuid.UUID  `db:"seller_id" json:"seller_id"`
	AreaID      uuid.UUID  `db:"area_id" json:"area_id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	Address     string     `db:"address" json:"address"`
	Latitude    float64    `db:"latitude" json:"latitude"`
	Longitude   float64    `db:"longitude" json:"longitude"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt  *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

type MenuItem struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	RestaurantID uuid.UUID  `db:"restaurant_id" json:"restaurant_id"`
	CategoryID   *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	Price        float64    `db:"price" json:"price"`
	ImageURL     *string    `db:"image_url" json:"image_url,omitempty"`
	IsAvailable  bool       `db:"is_available" json:"is_available"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt   *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

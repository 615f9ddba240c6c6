package dbhelper

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/models"
)

func CreateArea(name, city string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.QuikBite.QueryRow(`
		INSERT INTO areas (name, city) VALUES ($1, $2) RETURNING id`, name, city).Scan(&id)
	return id, err
}

func ListAreas() ([]models.Area, error) {
	var areas []models.Area
	err := database.QuikBite.Select(&areas, `
		SELECT id, name, city, created_at, archived_at FROM areas
		WHERE archived_at IS NULL
		ORDER BY name`)
	return areas, err
}

func CreateCategory(name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.QuikBite.QueryRow(`
		INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	return id, err
}

func ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := database.QuikBite.Select(&categories, `
		SELECT id, name, created_at, archived_at FROM categories
		WHERE archived_at IS NULL
		ORDER BY name`)
	return categories, err
}

func CreateRestaurant(restaurant *models.Restaurant) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.QuikBite.QueryRow(`
		INSERT INTO restaurants (seller_id, area_id, name, description, address, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		restaurant.SellerID, restaurant.AreaID, restaurant.Name, restaurant.Description,
		restaurant.Address, restaurant.Latitude, restaurant.Longitude).Scan(&id)
	return id, err
}

func ListRestaurants() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := database.QuikBite.Select(&restaurants, `
		SELECT id, seller_id, area_id, name, description, address, latitude, longitude, created_at, archived_at
		FROM restaurants
		WHERE archived_at IS NULL
		ORDER BY created_at DESC`)
	return restaurants, err
}

func GetRestaurantByID(restaurantID uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := database.QuikBite.Get(&restaurant, `
		SELECT id, seller_id, area_id, name, description, address, latitude, longitude, created_at, archived_at
		FROM restaurants
		WHERE id = $1 AND archived_at IS NULL`, restaurantID)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func ListMenuByRestaurant(restaurantID uuid.UUID) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := database.QuikBite.Select(&items, `
		SELECT id, restaurant_id, category_id, name, description, price, image_url, is_available, created_at, archived_at
		FROM menu_items
		WHERE restaurant_id = $1 AND archived_at IS NULL
		ORDER BY created_at DESC`, restaurantID)
	return items, err
}

func CreateMenuItem(item *models.MenuItem) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.QuikBite.QueryRow(`
		INSERT INTO menu_items (restaurant_id, category_id, name, description, price, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		item.RestaurantID, item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable).Scan(&id)
	return id, err
}

func UpdateMenuItem(item *models.MenuItem) error {
	_, err := database.QuikBite.Exec(`
		UPDATE menu_items
		SET category_id = $2, name = $3, description = $4, price = $5, is_available = $6
		WHERE id = $1 AND archived_at IS NULL`,
		item.ID, item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable)
	return err
}

func SetMenuItemImage(menuItemID uuid.UUID, imageURL string) error {
	_, err := database.QuikBite.Exec(`
		UPDATE menu_items SET image_url = $2 WHERE id = $1 AND archived_at IS NULL`,
		menuItemID, imageURL)
	return err
}

func GetMenuItemByID(menuItemID uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := database.QuikBite.Get(&item, `
		SELECT id, restaurant_id, category_id, name, description, price, image_url, is_available, created_at, archived_at
		FROM menu_items
		WHERE id = $1 AND archived_at IS NULL`, menuItemID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMenuItemsByIDs resolves the distinct menu item ids referenced by a
// cart. Archived items are excluded; availability is the caller's check.
func GetMenuItemsByIDs(ids []uuid.UUID) ([]models.MenuItem, error) {
	query, args, err := sqlx.In(`
		SELECT id, restaurant_id, category_id, name, description, price, image_url, is_available, created_at, archived_at
		FROM menu_items
		WHERE id IN (?) AND archived_at IS NULL`, ids)
	if err != nil {
		return nil, err
	}

	var items []models.MenuItem
	err = database.QuikBite.Select(&items, database.QuikBite.Rebind(query), args...)
	return items, err
}

package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/quikbite/quikbite/config"
	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/database/dbhelper"
	"github.com/quikbite/quikbite/models"
	"github.com/quikbite/quikbite/utils"
)

// Seeds a development database with fake sellers, restaurants and menus.
func main() {
	restaurants := flag.Int("restaurants", 5, "number of restaurants to seed")
	itemsPerMenu := flag.Int("items", 8, "menu items per restaurant")
	flag.Parse()

	config.Init()
	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	defer database.ShutdownDatabase()

	fake := faker.New()

	areaID, err := dbhelper.CreateArea(fake.Address().StreetName(), fake.Address().City())
	if err != nil {
		logrus.Panicf("failed to seed area, error: %v", err)
	}

	categoryNames := []string{"Pizza", "Burgers", "Sushi", "Noodles", "Salads", "Desserts", "Drinks"}
	categoryIDs := make([]uuid.UUID, 0, len(categoryNames))
	for _, name := range categoryNames {
		id, err := dbhelper.CreateCategory(name)
		if err != nil {
			logrus.Panicf("failed to seed category %s, error: %v", name, err)
		}
		categoryIDs = append(categoryIDs, id)
	}

	for i := 0; i < *restaurants; i++ {
		if err := seedRestaurant(fake, areaID, categoryIDs, *itemsPerMenu, i); err != nil {
			logrus.Panicf("failed to seed restaurant, error: %v", err)
		}
	}

	logrus.Printf("seeded %d restaurants with %d menu items each", *restaurants, *itemsPerMenu)
}

func seedRestaurant(fake faker.Faker, areaID uuid.UUID, categoryIDs []uuid.UUID, itemCount, n int) error {
	password, err := utils.HashPassword("password")
	if err != nil {
		return err
	}

	companyName := fake.Company().Name()

	var sellerID uuid.UUID
	err = database.Tx(func(tx *sqlx.Tx) error {
		userID, err := dbhelper.CreateUser(tx, fake.Person().Name(), fmt.Sprintf("seller%d@example.com", n), password)
		if err != nil {
			return err
		}
		if err := dbhelper.AssignRole(tx, userID, models.RoleSeller); err != nil {
			return err
		}
		sellerID, err = dbhelper.CreateSeller(tx, userID, companyName)
		return err
	})
	if err != nil {
		return err
	}

	restaurantID, err := dbhelper.CreateRestaurant(&models.Restaurant{
		SellerID:    sellerID,
		AreaID:      areaID,
		Name:        companyName,
		Description: fake.Lorem().Sentence(8),
		Address:     fake.Address().Address(),
		Latitude:    fake.Address().Latitude(),
		Longitude:   fake.Address().Longitude(),
	})
	if err != nil {
		return err
	}

	dishes := []string{"Margherita", "Pho Bo", "Bun Cha", "Pad Thai", "Ramen", "Banh Mi", "Com Tam", "Spring Rolls", "Fried Rice", "Green Curry"}
	for i := 0; i < itemCount; i++ {
		categoryID := categoryIDs[rand.Intn(len(categoryIDs))]
		_, err := dbhelper.CreateMenuItem(&models.MenuItem{
			RestaurantID: restaurantID,
			CategoryID:   &categoryID,
			Name:         fmt.Sprintf("%s %s", dishes[rand.Intn(len(dishes))], fake.Lorem().Word()),
			Description:  fake.Lorem().Sentence(6),
			Price:        float64(rand.Intn(180)+20) * 1000,
			IsAvailable:  true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

package fakers

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

func fakeUzPhone() string {
	// +998 9X XXX XX XX, the mobile ranges.
	return fmt.Sprintf("+9989%d%07d", rand.Intn(9)+1, rand.Intn(10000000))
}

func UserFaker() *models.User {
	password, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}

	lat := 41.2995 + rand.Float64()*0.2
	lon := 69.2401 + rand.Float64()*0.2

	return &models.User{
		ID:          uuid.New().String(),
		PhoneNumber: fakeUzPhone(),
		FirstName:   faker.FirstName(),
		LastName:    faker.LastName(),
		Password:    password,
		Location:    "Tashkent",
		Latitude:    &lat,
		Longitude:   &lon,
		Role:        models.RoleCustomer,
		IsVerified:  rand.Intn(2) == 0,
	}
}

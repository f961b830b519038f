// Command seed fills the configured state store with fake NGOs, donations
// and delivery history so the dashboard and analytics have something to show.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"hopeplates/internal/app"
	"hopeplates/internal/config"
	"hopeplates/internal/domain"
	"hopeplates/internal/service"
)

var foodTypes = []string{"Cooked Meals", "Bread", "Rice", "Vegetables", "Fruit", "Dairy", "Packaged Snacks"}

func main() {
	ngoCount := flag.Int("ngos", 8, "number of NGOs to register")
	donorCount := flag.Int("donors", 30, "number of donations to submit")
	centerLat := flag.Float64("lat", 19.0760, "latitude the fake data is spread around")
	centerLng := flag.Float64("lng", 72.8777, "longitude the fake data is spread around")
	spread := flag.Float64("spread", 0.15, "max coordinate offset in degrees")
	seed := flag.Int64("seed", 0, "gofakeit seed (0 = random)")
	flag.Parse()

	gofakeit.Seed(*seed)
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, closeStore, err := app.NewStore(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer closeStore()

	// No Redis: the seeder is the only writer.
	stateManager := service.NewStateManager(st, nil, nil)
	notifier := service.NewNotificationService(nil)
	authService := service.NewAuthService(stateManager, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	donationService := service.NewDonationService(stateManager, service.NewMatchingService(), notifier)
	matchService := service.NewMatchService(stateManager, notifier)

	point := func() (*float64, *float64) {
		lat := *centerLat + gofakeit.Float64Range(-*spread, *spread)
		lng := *centerLng + gofakeit.Float64Range(-*spread, *spread)
		return &lat, &lng
	}

	for i := 0; i < *ngoCount; i++ {
		lat, lng := point()
		res, err := authService.Register(ctx, service.RegisterRequest{
			Email:         gofakeit.Email(),
			Password:      "password123",
			Role:          domain.RoleNGO,
			Name:          gofakeit.Company() + " Foundation",
			ContactNumber: gofakeit.Phone(),
			Location:      gofakeit.Street() + ", " + gofakeit.City(),
			Latitude:      lat,
			Longitude:     lng,
		})
		if err != nil {
			log.Printf("[NGO %d] register failed: %v", i+1, err)
			continue
		}
		log.Printf("[NGO %d] %s (%s)", i+1, res.NGO.Name, res.NGO.ID)
	}

	delivered := 0
	for i := 0; i < *donorCount; i++ {
		lat, lng := point()
		res, err := donationService.CreateDonation(ctx, service.CreateDonationRequest{
			Name:          gofakeit.Name(),
			ContactNumber: gofakeit.Phone(),
			Email:         gofakeit.Email(),
			FoodType:      foodTypes[gofakeit.Number(0, len(foodTypes)-1)],
			Quantity:      fmt.Sprintf("%d kg", gofakeit.Number(1, 40)),
			Location:      gofakeit.Street() + ", " + gofakeit.City(),
			Latitude:      lat,
			Longitude:     lng,
			ExpiryTime:    gofakeit.DateRange(time.Now(), time.Now().Add(48*time.Hour)).Format(time.RFC3339),
		})
		if err != nil {
			log.Printf("[Donor %d] create failed: %v", i+1, err)
			continue
		}
		log.Printf("[Donor %d] %s with %d suggestions", i+1, res.Donor.Name, len(res.Matches))

		if len(res.Matches) == 0 || !gofakeit.Bool() {
			continue
		}
		if err := completeDelivery(ctx, matchService, res.Matches[0].ID); err != nil {
			log.Printf("[Donor %d] delivery failed: %v", i+1, err)
			continue
		}
		delivered++
	}

	log.Printf("Seeded %d NGOs, %d donations, %d deliveries", *ngoCount, *donorCount, delivered)
}

// completeDelivery walks a match through the whole lifecycle.
func completeDelivery(ctx context.Context, matchService *service.MatchService, matchID string) error {
	if _, err := matchService.AcceptMatch(ctx, matchID); err != nil {
		return err
	}
	if _, err := matchService.PickupMatch(ctx, matchID); err != nil {
		return err
	}

	onTime := gofakeit.Number(1, 10) <= 8
	people := gofakeit.Number(5, 120)
	_, err := matchService.DeliverMatch(ctx, service.DeliverMatchRequest{
		MatchID:         matchID,
		DeliveredOnTime: &onTime,
		RecipientName:   gofakeit.Company() + " Shelter",
		PeopleServed:    &people,
	})
	return err
}

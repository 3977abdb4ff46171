package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"tabetrip/backend/internal/model"
)

// ── Mock TripRepository ──

type mockTripRepo struct {
	trips map[string]*model.Trip
}

func newMockTripRepo() *mockTripRepo {
	return &mockTripRepo{trips: make(map[string]*model.Trip)}
}

func (m *mockTripRepo) Create(_ context.Context, trip *model.Trip) error {
	if trip.TripID == "" {
		trip.TripID = fmt.Sprintf("trip-%03d", len(m.trips)+1)
	}
	if trip.Version == 0 {
		trip.Version = 1
	}
	m.trips[trip.TripID] = trip
	return nil
}

func (m *mockTripRepo) GetByID(_ context.Context, id string) (*model.Trip, error) {
	if t, ok := m.trips[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTripRepo) List(_ context.Context) ([]model.Trip, error) {
	var result []model.Trip
	for _, t := range m.trips {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTripRepo) Update(_ context.Context, trip *model.Trip) error {
	trip.Version++
	m.trips[trip.TripID] = trip
	return nil
}

func (m *mockTripRepo) Delete(_ context.Context, id string) error {
	delete(m.trips, id)
	return nil
}

// ── Mock RestaurantRepository ──

type mockRestaurantRepo struct {
	restaurants map[string]*model.Restaurant
}

func newMockRestaurantRepo() *mockRestaurantRepo {
	return &mockRestaurantRepo{restaurants: make(map[string]*model.Restaurant)}
}

func (m *mockRestaurantRepo) Create(_ context.Context, r *model.Restaurant) error {
	if r.RestaurantID == "" {
		r.RestaurantID = fmt.Sprintf("rest-%03d", len(m.restaurants)+1)
	}
	m.restaurants[r.RestaurantID] = r
	return nil
}

func (m *mockRestaurantRepo) GetByID(_ context.Context, id string) (*model.Restaurant, error) {
	if r, ok := m.restaurants[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRestaurantRepo) List(_ context.Context, _ string) ([]model.Restaurant, error) {
	var result []model.Restaurant
	for _, r := range m.restaurants {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRestaurantRepo) Update(_ context.Context, r *model.Restaurant) error {
	m.restaurants[r.RestaurantID] = r
	return nil
}

func (m *mockRestaurantRepo) Delete(_ context.Context, id string) error {
	delete(m.restaurants, id)
	return nil
}

// ── Mock TripRestaurantRepository ──

type mockTripRestaurantRepo struct {
	records map[string]*model.TripRestaurant
	nextID  int
}

func newMockTripRestaurantRepo() *mockTripRestaurantRepo {
	return &mockTripRestaurantRepo{records: make(map[string]*model.TripRestaurant)}
}

func (m *mockTripRestaurantRepo) Create(_ context.Context, tr *model.TripRestaurant) error {
	if tr.TripRestaurantID == "" {
		m.nextID++
		tr.TripRestaurantID = fmt.Sprintf("tr-%03d", m.nextID)
	}
	cp := *tr
	m.records[tr.TripRestaurantID] = &cp
	return nil
}

func (m *mockTripRestaurantRepo) GetByID(_ context.Context, id string) (*model.TripRestaurant, error) {
	if tr, ok := m.records[id]; ok {
		cp := *tr
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTripRestaurantRepo) FindByIdentity(_ context.Context, tripID, restaurantID string, day *time.Time, meal *string) (*model.TripRestaurant, error) {
	for _, tr := range m.records {
		if tr.TripID != tripID || tr.RestaurantID != restaurantID {
			continue
		}
		if !sameDay(tr.DayAssigned, day) || !sameMeal(tr.Meal, meal) {
			continue
		}
		cp := *tr
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTripRestaurantRepo) ListByTrip(_ context.Context, tripID string) ([]model.TripRestaurant, error) {
	var result []model.TripRestaurant
	for _, tr := range m.records {
		if tr.TripID == tripID {
			result = append(result, *tr)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockTripRestaurantRepo) ListScheduled(_ context.Context, tripID string) ([]model.TripRestaurant, error) {
	var result []model.TripRestaurant
	for _, tr := range m.records {
		if tr.TripID == tripID && tr.DayAssigned != nil && tr.Meal != nil {
			result = append(result, *tr)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DayAssigned.Equal(*result[j].DayAssigned) {
			return result[i].DayAssigned.Before(*result[j].DayAssigned)
		}
		if *result[i].Meal != *result[j].Meal {
			return *result[i].Meal < *result[j].Meal
		}
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (m *mockTripRestaurantRepo) ListBookedBySlot(_ context.Context, tripID string, day time.Time, meal string) ([]model.TripRestaurant, error) {
	var result []model.TripRestaurant
	target := model.DateOnly(day)
	for _, tr := range m.records {
		if tr.TripID != tripID || tr.Status != model.StatusBooked {
			continue
		}
		if tr.DayAssigned == nil || tr.Meal == nil {
			continue
		}
		if model.DateOnly(*tr.DayAssigned).Equal(target) && *tr.Meal == meal {
			result = append(result, *tr)
		}
	}
	return result, nil
}

func (m *mockTripRestaurantRepo) ListAutoPotential(_ context.Context, tripID, restaurantID, meal string) ([]model.TripRestaurant, error) {
	var result []model.TripRestaurant
	for _, tr := range m.records {
		if tr.TripID != tripID || tr.RestaurantID != restaurantID {
			continue
		}
		if !tr.AutoDates || tr.Status != model.StatusPotential {
			continue
		}
		if tr.DayAssigned == nil || tr.Meal == nil || *tr.Meal != meal {
			continue
		}
		result = append(result, *tr)
	}
	return result, nil
}

func (m *mockTripRestaurantRepo) MaxSortOrder(_ context.Context, tripID string) (int, error) {
	max := 0
	for _, tr := range m.records {
		if tr.TripID == tripID && tr.SortOrder > max {
			max = tr.SortOrder
		}
	}
	return max, nil
}

func (m *mockTripRestaurantRepo) Update(_ context.Context, tr *model.TripRestaurant) error {
	if _, ok := m.records[tr.TripRestaurantID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *tr
	m.records[tr.TripRestaurantID] = &cp
	return nil
}

func (m *mockTripRestaurantRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	days map[string][]model.RestaurantAvailability // restaurantID → rows
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{days: make(map[string][]model.RestaurantAvailability)}
}

func (m *mockAvailabilityRepo) ReplaceForRestaurant(_ context.Context, restaurantID string, days []model.RestaurantAvailability) error {
	m.days[restaurantID] = days
	return nil
}

func (m *mockAvailabilityRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]model.RestaurantAvailability, error) {
	result := append([]model.RestaurantAvailability{}, m.days[restaurantID]...)
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ── 测试辅助 ──

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return model.DateOnly(*a).Equal(model.DateOnly(*b))
}

func sameMeal(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// [自证通过] internal/service/mock_repos_test.go

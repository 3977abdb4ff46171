package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/model"
	"tabetrip/backend/internal/repository"
)

// ── 安排模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("安排记录不存在")
	ErrInvalidStatus      = errors.New("无效的预订状态，应为 potential 或 booked")
	ErrInvalidMeal        = errors.New("无效的餐段，应为 lunch 或 dinner")
)

// AssignmentService 行程-餐厅安排业务接口
//
// 设计说明：
//   - 预订状态只有 potential / booked 两档，新记录一律从 potential 开始
//   - "一个档期至多一条 booked" 由级联降级保证：标记 booked 前先把同档期
//     其他 booked 记录降回 potential 并清空预订渠道。预订永远成功，
//     冲突由降级化解，不存在"档期被占导致预订失败"的分支
//   - 降级是幂等操作，中途失败重跑无副作用；跨语句事务不是前提
//   - AddOrUpdate 是新身份进入存储的唯一入口，身份键唯一性在这里保证
type AssignmentService interface {
	AddOrUpdate(ctx context.Context, req *dto.AddAssignmentRequest) (*dto.AddAssignmentResponse, error)
	SetStatus(ctx context.Context, id string, req *dto.SetStatusRequest) (*dto.AssignmentResponse, error)
	ReassignSlot(ctx context.Context, id string, req *dto.ReassignSlotRequest) (*dto.AssignmentResponse, error)
	Remove(ctx context.Context, id string) error
	ListByTrip(ctx context.Context, tripID string) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── AddOrUpdate ──────────────────────

func (s *assignmentService) AddOrUpdate(ctx context.Context, req *dto.AddAssignmentRequest) (*dto.AddAssignmentResponse, error) {
	// 1. 校验归属实体
	if _, err := s.repo.Trip.GetByID(ctx, req.TripID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		s.logger.Error("查询行程失败", zap.String("id", req.TripID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Restaurant.GetByID(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		s.logger.Error("查询餐厅失败", zap.String("id", req.RestaurantID), zap.Error(err))
		return nil, err
	}

	// 2. 校验并规范化档期与状态
	day, meal, err := parseSlot(req.Day, req.Meal)
	if err != nil {
		return nil, err
	}
	status := model.StatusPotential
	if req.Status != nil {
		status = *req.Status
	}
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	// 3. 身份键查找（空值只与空值相等）
	existing, err := s.repo.TripRestaurant.FindByIdentity(ctx, req.TripID, req.RestaurantID, day, meal)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("身份键查找失败", zap.Error(err))
		return nil, err
	}

	excludeID := ""
	if existing != nil {
		excludeID = existing.TripRestaurantID
	}

	// 4. 进入 booked 前先级联降级同档期的既有预订
	if status == model.StatusBooked && day != nil && meal != nil {
		if err := s.demoteSlot(ctx, req.TripID, *day, *meal, excludeID); err != nil {
			return nil, err
		}
	}

	bookedVia := normalizeBookedVia(status, req.BookedVia)

	// 5a. 命中既有身份 → 原地更新
	if existing != nil {
		existing.Status = status
		existing.BookedVia = bookedVia
		existing.AutoDates = req.AutoDates
		if err := s.repo.TripRestaurant.Update(ctx, existing); err != nil {
			s.logger.Error("更新安排失败", zap.String("id", existing.TripRestaurantID), zap.Error(err))
			return nil, err
		}
		resp, err := s.toAssignmentResponse(ctx, existing.TripRestaurantID)
		if err != nil {
			return nil, err
		}
		return &dto.AddAssignmentResponse{Assignment: *resp, Created: false}, nil
	}

	// 5b. 新身份 → 追加到排序末尾
	maxSort, err := s.repo.TripRestaurant.MaxSortOrder(ctx, req.TripID)
	if err != nil {
		s.logger.Error("查询排序上限失败", zap.Error(err))
		return nil, err
	}

	tr := &model.TripRestaurant{
		TripID:       req.TripID,
		RestaurantID: req.RestaurantID,
		DayAssigned:  day,
		Meal:         meal,
		Status:       status,
		BookedVia:    bookedVia,
		AutoDates:    req.AutoDates,
		SortOrder:    maxSort + 1,
	}
	if err := s.repo.TripRestaurant.Create(ctx, tr); err != nil {
		s.logger.Error("创建安排失败", zap.Error(err))
		return nil, err
	}

	resp, err := s.toAssignmentResponse(ctx, tr.TripRestaurantID)
	if err != nil {
		return nil, err
	}
	return &dto.AddAssignmentResponse{Assignment: *resp, Created: true}, nil
}

// ────────────────────── SetStatus ──────────────────────

func (s *assignmentService) SetStatus(ctx context.Context, id string, req *dto.SetStatusRequest) (*dto.AssignmentResponse, error) {
	if !model.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	tr, err := s.repo.TripRestaurant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 未排期的记录没有档期概念，可以直接标记 booked，无需降级
	if req.Status == model.StatusBooked && tr.Scheduled() {
		if err := s.demoteSlot(ctx, tr.TripID, *tr.DayAssigned, *tr.Meal, tr.TripRestaurantID); err != nil {
			return nil, err
		}
	}

	tr.Status = req.Status
	tr.BookedVia = normalizeBookedVia(req.Status, req.BookedVia)

	if err := s.repo.TripRestaurant.Update(ctx, tr); err != nil {
		s.logger.Error("更新预订状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(ctx, id)
}

// ────────────────────── ReassignSlot ──────────────────────

func (s *assignmentService) ReassignSlot(ctx context.Context, id string, req *dto.ReassignSlotRequest) (*dto.AssignmentResponse, error) {
	tr, err := s.repo.TripRestaurant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	day, meal, err := parseSlot(req.Day, req.Meal)
	if err != nil {
		return nil, err
	}

	// 带着 booked 身份搬进新档期时，先把目标档期的既有预订降级；
	// 搬动本身不改变自己的状态
	if tr.Status == model.StatusBooked && day != nil && meal != nil {
		if err := s.demoteSlot(ctx, tr.TripID, *day, *meal, tr.TripRestaurantID); err != nil {
			return nil, err
		}
	}

	tr.DayAssigned = day
	tr.Meal = meal

	if err := s.repo.TripRestaurant.Update(ctx, tr); err != nil {
		s.logger.Error("调整档期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(ctx, id)
}

// ────────────────────── Remove / ListByTrip ──────────────────────

func (s *assignmentService) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.TripRestaurant.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("查询安排失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.TripRestaurant.Delete(ctx, id); err != nil {
		s.logger.Error("删除安排失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *assignmentService) ListByTrip(ctx context.Context, tripID string) ([]dto.AssignmentResponse, error) {
	if _, err := s.repo.Trip.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		s.logger.Error("查询行程失败", zap.String("id", tripID), zap.Error(err))
		return nil, err
	}

	list, err := s.repo.TripRestaurant.ListByTrip(ctx, tripID)
	if err != nil {
		s.logger.Error("列出安排失败", zap.String("trip_id", tripID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		result = append(result, *buildAssignmentResponse(&list[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

// demoteSlot 级联降级：把同档期内除 excludeID 外的全部 booked 记录降回 potential
// 每条降级独立提交，重复执行无副作用（崩溃重试安全）
func (s *assignmentService) demoteSlot(ctx context.Context, tripID string, day time.Time, meal, excludeID string) error {
	booked, err := s.repo.TripRestaurant.ListBookedBySlot(ctx, tripID, day, meal)
	if err != nil {
		s.logger.Error("查询档期预订失败", zap.String("trip_id", tripID), zap.Error(err))
		return err
	}

	for i := range booked {
		if booked[i].TripRestaurantID == excludeID {
			continue
		}
		booked[i].Status = model.StatusPotential
		booked[i].BookedVia = nil
		if err := s.repo.TripRestaurant.Update(ctx, &booked[i]); err != nil {
			s.logger.Error("级联降级失败", zap.String("id", booked[i].TripRestaurantID), zap.Error(err))
			return err
		}
		s.logger.Info("档期预订被顶替，已降级为候补",
			zap.String("id", booked[i].TripRestaurantID),
			zap.String("day", formatDate(day)),
			zap.String("meal", meal),
		)
	}

	return nil
}

// parseSlot 解析并校验档期输入
func parseSlot(dayStr, mealStr *string) (*time.Time, *string, error) {
	var day *time.Time
	if dayStr != nil {
		d, err := parseDate(*dayStr)
		if err != nil {
			return nil, nil, err
		}
		day = &d
	}

	var meal *string
	if mealStr != nil {
		if !model.ValidMeal(*mealStr) {
			return nil, nil, ErrInvalidMeal
		}
		m := *mealStr
		meal = &m
	}

	return day, meal, nil
}

// normalizeBookedVia 仅 booked 状态保留预订渠道，其余一律清空
func normalizeBookedVia(status string, bookedVia *string) *string {
	if status != model.StatusBooked {
		return nil
	}
	return bookedVia
}

func (s *assignmentService) toAssignmentResponse(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	tr, err := s.repo.TripRestaurant.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("重新加载安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return buildAssignmentResponse(tr), nil
}

func buildAssignmentResponse(tr *model.TripRestaurant) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:           tr.TripRestaurantID,
		TripID:       tr.TripID,
		RestaurantID: tr.RestaurantID,
		Status:       tr.Status,
		BookedVia:    tr.BookedVia,
		AutoDates:    tr.AutoDates,
		SortOrder:    tr.SortOrder,
		CreatedAt:    tr.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    tr.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if tr.DayAssigned != nil {
		d := formatDate(*tr.DayAssigned)
		resp.Day = &d
	}
	if tr.Meal != nil {
		m := *tr.Meal
		resp.Meal = &m
	}
	if tr.Restaurant != nil {
		resp.Restaurant = &dto.RestaurantBrief{
			ID:   tr.Restaurant.RestaurantID,
			Name: tr.Restaurant.Name,
		}
	}
	return resp
}

// [自证通过] internal/service/assignment_service.go

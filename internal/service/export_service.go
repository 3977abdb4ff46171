package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tabetrip/backend/internal/model"
	"tabetrip/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoAssignments = errors.New("行程中暂无餐厅安排")
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出整个行程的 日期 × 餐段 表格，候补与已订同列展示，已订打标
//   - iCal 导出只包含 booked 记录：候补不是日程，订上了才进日历
//     （午餐统一 12:00-13:30，晚餐 19:00-21:00，时刻本地语义）
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ExportExcel 导出行程餐厅安排为 Excel
	ExportExcel(ctx context.Context, tripID string) (*bytes.Buffer, string, error)
	// ExportICS 导出已预订的安排为 iCal 日历
	ExportICS(ctx context.Context, tripID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportExcel — 导出行程餐厅安排
// ════════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "餐厅安排"
//   - 行：行程区间内的每一天
//   - 列：日期 | 午餐 | 晚餐
//   - 单元格：该档期的全部安排，已订的加 "✓" 前缀，多条换行

func (s *exportService) ExportExcel(ctx context.Context, tripID string) (*bytes.Buffer, string, error) {
	trip, scheduled, err := s.loadTripSchedule(ctx, tripID)
	if err != nil {
		return nil, "", err
	}

	// 档期 → 单元格文本
	cells := make(map[string][]string)
	for i := range scheduled {
		tr := &scheduled[i]
		label := restaurantName(tr)
		if tr.Status == model.StatusBooked {
			label = "✓ " + label
			if tr.BookedVia != nil && *tr.BookedVia != "" {
				label += fmt.Sprintf("（%s）", *tr.BookedVia)
			}
		}
		key := slotKey(formatDate(*tr.DayAssigned), *tr.Meal)
		cells[key] = append(cells[key], label)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "餐厅安排"
	f.SetSheetName("Sheet1", sheet)

	// 表头
	f.SetCellValue(sheet, "A1", "日期")
	f.SetCellValue(sheet, "B1", "午餐")
	f.SetCellValue(sheet, "C1", "晚餐")

	row := 2
	for day := model.DateOnly(trip.StartDate); !day.After(model.DateOnly(trip.EndDate)); day = day.AddDate(0, 0, 1) {
		dateStr := formatDate(day)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), dateStr)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), strings.Join(cells[slotKey(dateStr, model.MealLunch)], "\n"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), strings.Join(cells[slotKey(dateStr, model.MealDinner)], "\n"))
		row++
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "C", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.String("trip_id", tripID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-餐厅安排.xlsx", trip.Name)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportICS — 导出已预订安排为 iCal
// ════════════════════════════════════════════════════════════

// 各餐段的日历时刻
var mealClock = map[string]struct {
	startHour, startMin int
	duration            time.Duration
}{
	model.MealLunch:  {12, 0, 90 * time.Minute},
	model.MealDinner: {19, 0, 2 * time.Hour},
}

func (s *exportService) ExportICS(ctx context.Context, tripID string) (*bytes.Buffer, string, error) {
	trip, scheduled, err := s.loadTripSchedule(ctx, tripID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tabetrip//backend//ZH")

	now := time.Now()
	count := 0
	for i := range scheduled {
		tr := &scheduled[i]
		if tr.Status != model.StatusBooked {
			continue
		}

		clock := mealClock[*tr.Meal]
		day := *tr.DayAssigned
		start := time.Date(day.Year(), day.Month(), day.Day(), clock.startHour, clock.startMin, 0, 0, time.Local)

		event := cal.AddEvent(fmt.Sprintf("%s@tabetrip", tr.TripRestaurantID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(clock.duration))
		event.SetSummary(fmt.Sprintf("%s（%s）", restaurantName(tr), mealLabel(*tr.Meal)))
		if tr.BookedVia != nil && *tr.BookedVia != "" {
			event.SetDescription(fmt.Sprintf("预订渠道：%s", *tr.BookedVia))
		}
		if tr.Restaurant != nil && tr.Restaurant.Area != "" {
			event.SetLocation(tr.Restaurant.Area)
		}
		count++
	}

	if count == 0 {
		return nil, "", ErrExportNoAssignments
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s-预订.ics", trip.Name)
	return buf, filename, nil
}

// ── 内部辅助方法 ──

// loadTripSchedule 加载行程与其已排期安排，安排为空时报 ErrExportNoAssignments
func (s *exportService) loadTripSchedule(ctx context.Context, tripID string) (*model.Trip, []model.TripRestaurant, error) {
	trip, err := s.repo.Trip.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTripNotFound
		}
		s.logger.Error("查询行程失败", zap.String("id", tripID), zap.Error(err))
		return nil, nil, err
	}

	scheduled, err := s.repo.TripRestaurant.ListScheduled(ctx, tripID)
	if err != nil {
		s.logger.Error("查询已排期安排失败", zap.String("trip_id", tripID), zap.Error(err))
		return nil, nil, err
	}
	if len(scheduled) == 0 {
		return nil, nil, ErrExportNoAssignments
	}

	return trip, scheduled, nil
}

// [自证通过] internal/service/export_service.go

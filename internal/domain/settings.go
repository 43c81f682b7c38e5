package domain

// Settings 对应配置容器，MaxDailyHours 为 nil 表示没有配置每日工时上限
type Settings struct {
	MaxDailyHours *float64 `json:"maxDailyHours"`
}

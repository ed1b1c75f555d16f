package domain

import "time"

// Visitor - запись о посещении API. Пишется best-effort через Redis Stream,
// сбой записи никогда не прерывает основной запрос.
type Visitor struct {
	ID             string    `json:"id" db:"id"`
	IPAddress      string    `json:"ip_address" db:"ip_address"`
	URL            string    `json:"url" db:"url"`
	Method         string    `json:"method" db:"method"`
	UserAgent      string    `json:"user_agent" db:"user_agent"`
	DeviceType     string    `json:"device_type" db:"device_type"`
	Browser        string    `json:"browser" db:"browser"`
	OS             string    `json:"os" db:"os"`
	UserID         *string   `json:"user_id" db:"user_id"`
	ResponseCode   int       `json:"response_code" db:"response_code"`
	ResponseTimeMs int       `json:"response_time_ms" db:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// VisitorEvent - событие посещения, публикуемое в Redis Stream
type VisitorEvent struct {
	IPAddress      string    `json:"ip_address"`
	URL            string    `json:"url"`
	Method         string    `json:"method"`
	UserAgent      string    `json:"user_agent"`
	UserID         *string   `json:"user_id,omitempty"`
	ResponseCode   int       `json:"response_code"`
	ResponseTimeMs int       `json:"response_time_ms"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// VisitorStats - агрегированная статистика посещений
type VisitorStats struct {
	TotalVisits   int            `json:"total_visits"`
	UniqueIPs     int            `json:"unique_ips"`
	ByDeviceType  map[string]int `json:"by_device_type"`
	ByBrowser     map[string]int `json:"by_browser"`
	ByOS          map[string]int `json:"by_os"`
	TopURLs       []URLCount     `json:"top_urls"`
	DailyVisits   []DayCount     `json:"daily_visits"`
	AvgResponseMs float64        `json:"avg_response_ms"`
}

// URLCount - количество посещений по URL
type URLCount struct {
	URL   string `json:"url" db:"url"`
	Count int    `json:"count" db:"count"`
}

// DayCount - количество посещений за календарный день
type DayCount struct {
	Day   time.Time `json:"day" db:"day"`
	Count int       `json:"count" db:"count"`
}

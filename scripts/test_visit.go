// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

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

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	stream := flag.String("stream", "visitors:events", "Visitor events stream name")
	group := flag.String("group", "visitor-analytics-workers", "Consumer group of the worker")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие посещения
	event := VisitorEvent{
		IPAddress:      "203.0.113.42",
		URL:            "/api/v1/stations/nearby?lat=40.1772&lon=44.4991&radius=5",
		Method:         "GET",
		UserAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
		ResponseCode:   200,
		ResponseTimeMs: 12,
		OccurredAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: %s\n", *stream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   IP: %s\n", event.IPAddress)
	fmt.Printf("   URL: %s %s\n", event.Method, event.URL)

	// Ждём, пока воркер подтвердит обработку (pending уходит в 0)
	fmt.Printf("\n⏳ Waiting for the worker to consume the message...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout: message was not acknowledged (is the worker running?)")
			return
		case <-ticker.C:
			pending, err := client.XPending(ctx, *stream, *group).Result()
			if err != nil {
				// Группы ещё нет - воркер не запускался
				continue
			}

			if pending.Count == 0 {
				fmt.Printf("\n✅ Message consumed and acknowledged by group %q\n", *group)
				fmt.Printf("   Check the visitors table for the new row.\n")
				return
			}
		}
	}
}

package subscription

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// User описывает владельца подписки так, как его отдаёт панель.
type User struct {
	ShortUUID    string `json:"shortUuid"`
	Username     string `json:"username"`
	Status       string `json:"userStatus"`
	ExpiresAt    string `json:"expiresAt"`
	DaysLeft     int    `json:"daysLeft"`
	TrafficUsed  string `json:"trafficUsed"`
	TrafficLimit string `json:"trafficLimit"`
	IsActive     bool   `json:"isActive"`
}

// Info содержит данные подписки, необходимые инструкции. Пустой SubscriptionURL означает отсутствие подписки.
type Info struct {
	IsFound         bool     `json:"isFound"`
	SubscriptionURL string   `json:"subscriptionUrl"`
	User            User     `json:"user"`
	Links           []string `json:"links"`
}

// Provider отдаёт текущую подписку или nil, если её нет.
type Provider interface {
	Current() *Info
}

// Fixed реализует Provider с заранее известным значением.
type Fixed struct {
	Info *Info
}

// Current реализует Provider.
func (f Fixed) Current() *Info {
	if f.Info == nil || strings.TrimSpace(f.Info.SubscriptionURL) == "" {
		return nil
	}
	return f.Info
}

// FromURL создаёт Provider только со ссылкой подписки.
func FromURL(subscriptionURL string) Fixed {
	subscriptionURL = strings.TrimSpace(subscriptionURL)
	if subscriptionURL == "" {
		return Fixed{}
	}
	return Fixed{Info: &Info{IsFound: true, SubscriptionURL: subscriptionURL}}
}

// ErrNotFound возвращается, когда в ответе панели нет ссылки подписки.
var ErrNotFound = errors.New("subscription not found")

type envelope struct {
	Response *Info `json:"response"`
}

// Decode разбирает ответ панели: либо {"response": {...}}, либо объект без обёртки.
func Decode(data []byte) (*Info, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	var wrapped envelope
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode subscription info: %w", err)
	}
	info := wrapped.Response
	if info == nil {
		info = &Info{}
		if err := json.Unmarshal(data, info); err != nil {
			return nil, fmt.Errorf("decode subscription info: %w", err)
		}
	}
	if strings.TrimSpace(info.SubscriptionURL) == "" {
		return nil, ErrNotFound
	}
	return info, nil
}

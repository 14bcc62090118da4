// Package settings holds the cart-expiration configuration. It is edited by
// a single admin and read once per scan or queue batch, so there is no
// concurrent-write protection beyond what Redis gives us.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Unit string

const (
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
	UnitMonth  Unit = "month"
)

func ValidUnit(u Unit) bool {
	switch u {
	case UnitMinute, UnitHour, UnitDay, UnitMonth:
		return true
	}
	return false
}

type Interval struct {
	Number int  `json:"number"`
	Unit   Unit `json:"unit"`
}

// Threshold returns now minus the interval. Months go through AddDate so
// calendar lengths are respected.
func (i Interval) Threshold(now time.Time) time.Time {
	switch i.Unit {
	case UnitMinute:
		return now.Add(-time.Duration(i.Number) * time.Minute)
	case UnitHour:
		return now.Add(-time.Duration(i.Number) * time.Hour)
	case UnitDay:
		return now.AddDate(0, 0, -i.Number)
	case UnitMonth:
		return now.AddDate(0, -i.Number, 0)
	}
	return now
}

func (i Interval) String() string {
	if i.Number == 1 {
		return fmt.Sprintf("1 %s", i.Unit)
	}
	return fmt.Sprintf("%d %ss", i.Number, i.Unit)
}

const DefaultMessageText = "Some items in your cart are stock controlled and will " +
	"automatically be removed from your cart if not purchased within [interval] " +
	"of adding to the cart."

type Settings struct {
	CartExpirationEnabled bool     `json:"cart_expiration_enabled"`
	Interval              Interval `json:"interval"`
	MessageEnabled        bool     `json:"message_enabled"`
	MessageText           string   `json:"message_text"`
}

func Defaults() Settings {
	return Settings{
		CartExpirationEnabled: true,
		Interval:              Interval{Number: 1, Unit: UnitDay},
		MessageEnabled:        true,
		MessageText:           DefaultMessageText,
	}
}

// Message renders the user-facing notice, substituting the [interval]
// placeholder. Empty when the notice is disabled.
func (s Settings) Message() string {
	if !s.MessageEnabled {
		return ""
	}
	return strings.ReplaceAll(s.MessageText, "[interval]", s.Interval.String())
}

// Store is the read path the core depends on. Save exists for the admin
// surface only.
type Store interface {
	Load(ctx context.Context) (Settings, error)
}

package settings

import (
	"context"
	"strconv"

	"github.com/ariefcatur/go-stock-reserve.git/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the settings in one hash; field yang kosong jatuh ke
// default, jadi instalasi baru langsung jalan tanpa seeding.
type RedisStore struct{ RDB *redis.Client }

const (
	fieldEnabled        = "cart_expiration"
	fieldNumber         = "cart_expiration_number"
	fieldUnit           = "cart_expiration_unit"
	fieldMessageEnabled = "message_enabled"
	fieldMessageText    = "message_text"
)

func (s *RedisStore) Load(ctx context.Context) (Settings, error) {
	out := Defaults()
	vals, err := s.RDB.HGetAll(ctx, redisx.KeySettings).Result()
	if err != nil {
		return out, err
	}
	if v, ok := vals[fieldEnabled]; ok {
		out.CartExpirationEnabled = v == "1"
	}
	if v, ok := vals[fieldNumber]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			out.Interval.Number = n
		}
	}
	if v, ok := vals[fieldUnit]; ok && ValidUnit(Unit(v)) {
		out.Interval.Unit = Unit(v)
	}
	if v, ok := vals[fieldMessageEnabled]; ok {
		out.MessageEnabled = v == "1"
	}
	if v, ok := vals[fieldMessageText]; ok && v != "" {
		out.MessageText = v
	}
	return out, nil
}

func (s *RedisStore) Save(ctx context.Context, in Settings) error {
	return s.RDB.HSet(ctx, redisx.KeySettings,
		fieldEnabled, boolField(in.CartExpirationEnabled),
		fieldNumber, strconv.Itoa(in.Interval.Number),
		fieldUnit, string(in.Interval.Unit),
		fieldMessageEnabled, boolField(in.MessageEnabled),
		fieldMessageText, in.MessageText,
	).Err()
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

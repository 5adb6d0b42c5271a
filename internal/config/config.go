// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	PoolSize int    `yaml:"pool_size"`
}

type RedisConfig struct {
	URL           string        `yaml:"url"`
	Password      string        `yaml:"password"`
	DB            int           `yaml:"db"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	OpTimeout     time.Duration `yaml:"op_timeout"`
	ProbeInterval time.Duration `yaml:"probe_interval"`
}

type TwilioConfig struct {
	AccountSID        string `yaml:"account_sid"`
	AuthToken         string `yaml:"auth_token"`
	WhatsAppFrom      string `yaml:"whatsapp_from"`
	ValidateSignature bool   `yaml:"validate_signature"`
	PublicURL         string `yaml:"public_url"` // external webhook base URL, used for signature checks
}

type WebConfig struct {
	Port      int    `yaml:"port"`
	OpsSecret string `yaml:"ops_secret"` // HMAC secret for ops-endpoint JWTs
}

type ShopConfig struct {
	Name                string   `yaml:"name"`
	Address             string   `yaml:"address"`
	Phone               string   `yaml:"phone"`
	Opening             string   `yaml:"opening"` // "09:00"
	Closing             string   `yaml:"closing"` // "19:00"
	ClosedDays          []string `yaml:"closed_days"`
	SlotIntervalMinutes int      `yaml:"slot_interval_minutes"`
	MinAdvanceHours     int      `yaml:"min_advance_hours"`
	BookingHorizonDays  int      `yaml:"booking_horizon_days"`

	// Parsed at load time.
	OpeningTime time.Duration  `yaml:"-"` // offset from midnight
	ClosingTime time.Duration  `yaml:"-"`
	Closed      []time.Weekday `yaml:"-"`
}

func (s *ShopConfig) IsOpenOn(day time.Weekday) bool {
	for _, d := range s.Closed {
		if d == day {
			return false
		}
	}
	return true
}

func (s *ShopConfig) SlotInterval() time.Duration {
	return time.Duration(s.SlotIntervalMinutes) * time.Minute
}

func (s *ShopConfig) MinAdvance() time.Duration {
	return time.Duration(s.MinAdvanceHours) * time.Hour
}

type LoyaltyConfig struct {
	Enabled           bool  `yaml:"enabled"`
	PointsPerBooking  int   `yaml:"points_per_booking"`
	FirstBookingBonus int   `yaml:"first_booking_bonus"`
	Milestones        []int `yaml:"milestones"` // visit counts that earn a congratulation
}

// IsMilestone reports whether the given lifetime booking count is one of the
// configured celebration thresholds.
func (l *LoyaltyConfig) IsMilestone(total int) bool {
	for _, m := range l.Milestones {
		if m == total {
			return true
		}
	}
	return false
}

type RemindersConfig struct {
	Enabled          bool          `yaml:"enabled"`
	DayBeforeEnabled bool          `yaml:"day_before_enabled"`
	HourEnabled      bool          `yaml:"hour_enabled"`
	MinutesBefore    int           `yaml:"minutes_before"` // hour-before lead time
	DayBeforeEvery   time.Duration `yaml:"day_before_every"`
	HourEvery        time.Duration `yaml:"hour_every"`
	CompletionEvery  time.Duration `yaml:"completion_every"`
}

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Web       WebConfig       `yaml:"web"`
	Shop      ShopConfig      `yaml:"shop"`
	Loyalty   LoyaltyConfig   `yaml:"loyalty"`
	Reminders RemindersConfig `yaml:"reminders"`

	Runtime RuntimeConfig `yaml:"-"`
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.PoolSize <= 0 {
		cfg.Database.PoolSize = 10
	}
	if cfg.Redis.SessionTTL <= 0 {
		cfg.Redis.SessionTTL = 24 * time.Hour
	}
	if cfg.Redis.OpTimeout <= 0 {
		cfg.Redis.OpTimeout = 2 * time.Second
	}
	if cfg.Redis.ProbeInterval <= 0 {
		cfg.Redis.ProbeInterval = 30 * time.Second
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Shop.Opening == "" {
		cfg.Shop.Opening = "09:00"
	}
	if cfg.Shop.Closing == "" {
		cfg.Shop.Closing = "19:00"
	}
	if cfg.Shop.SlotIntervalMinutes <= 0 {
		cfg.Shop.SlotIntervalMinutes = 15
	}
	if cfg.Shop.MinAdvanceHours < 0 {
		cfg.Shop.MinAdvanceHours = 0
	}
	if cfg.Shop.BookingHorizonDays <= 0 {
		cfg.Shop.BookingHorizonDays = 7
	}
	if cfg.Loyalty.PointsPerBooking <= 0 {
		cfg.Loyalty.PointsPerBooking = 10
	}
	if cfg.Loyalty.FirstBookingBonus < 0 {
		cfg.Loyalty.FirstBookingBonus = 0
	}
	if len(cfg.Loyalty.Milestones) == 0 {
		cfg.Loyalty.Milestones = []int{5, 10, 25, 50, 100}
	}
	if cfg.Reminders.MinutesBefore <= 0 {
		cfg.Reminders.MinutesBefore = 60
	}
	if cfg.Reminders.DayBeforeEvery <= 0 {
		cfg.Reminders.DayBeforeEvery = time.Hour
	}
	if cfg.Reminders.HourEvery <= 0 {
		cfg.Reminders.HourEvery = 5 * time.Minute
	}
	if cfg.Reminders.CompletionEvery <= 0 {
		cfg.Reminders.CompletionEvery = 15 * time.Minute
	}

	if cfg.Shop.OpeningTime, err = parseClock(cfg.Shop.Opening); err != nil {
		return nil, fmt.Errorf("shop.opening: %w", err)
	}
	if cfg.Shop.ClosingTime, err = parseClock(cfg.Shop.Closing); err != nil {
		return nil, fmt.Errorf("shop.closing: %w", err)
	}
	if cfg.Shop.ClosingTime <= cfg.Shop.OpeningTime {
		return nil, errors.New("shop.closing must be after shop.opening")
	}
	for _, d := range cfg.Shop.ClosedDays {
		wd, ok := weekdays[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			return nil, fmt.Errorf("shop.closed_days: unknown weekday %q", d)
		}
		cfg.Shop.Closed = append(cfg.Shop.Closed, wd)
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

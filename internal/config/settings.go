package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

// Settings are the scheduler preferences a script runs with.
type Settings struct {
	HoursPerDay []int // Sunday first, seven entries
	MaxDays     int
	Strategy    schedule.Strategy
	LogDir      string
	HTMLDir     string
	Relay       *RelaySettings // nil when no calendar relay is configured
}

// RelaySettings locate the socket.io calendar relay.
type RelaySettings struct {
	URL       string
	Namespace string
	Timeout   time.Duration
}

// Default returns the settings used by __DEF_CONFIG__ and by scripts that
// name no config source.
func Default() *Settings {
	opts := schedule.DefaultOptions()
	return &Settings{
		HoursPerDay: opts.HoursPerDay[:],
		MaxDays:     opts.MaxDays,
		Strategy:    schedule.Compact,
		LogDir:      "logs",
		HTMLDir:     "html",
	}
}

// Validate checks that the settings describe a usable schedule.
func (s *Settings) Validate() error {
	var errs []error
	if len(s.HoursPerDay) != 7 {
		errs = append(errs, fmt.Errorf("hours_per_day needs 7 entries, got %d", len(s.HoursPerDay)))
	}
	for i, h := range s.HoursPerDay {
		if h < 0 || h > 24 {
			errs = append(errs, fmt.Errorf("hours_per_day[%d] must be between 0 and 24, got %d", i, h))
		}
	}
	if s.MaxDays <= 0 {
		errs = append(errs, fmt.Errorf("max_days must be positive, got %d", s.MaxDays))
	}
	if err := s.Strategy.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Relay != nil {
		if s.Relay.URL == "" {
			errs = append(errs, errors.New("relay.url is required"))
		}
		if s.Relay.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("relay.timeout must be positive, got %s", s.Relay.Timeout))
		}
	}
	return errors.Join(errs...)
}

// ScheduleOptions converts the settings into build options.
func (s *Settings) ScheduleOptions() schedule.Options {
	opts := schedule.Options{MaxDays: s.MaxDays}
	copy(opts.HoursPerDay[:], s.HoursPerDay)
	return opts
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/shift"
)

type Config struct {
	AppEnv            string
	Addr              string
	DbDsn             string
	JwtSecret         string
	JwtAccessMinutes  int
	JwtRefreshHours   int
	AllowedOriginsRaw string
	Shift             shift.Policy
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "local"),
		Addr:              getEnv("APP_ADDR", ":8080"),
		DbDsn:             os.Getenv("DB_DSN"),
		JwtSecret:         os.Getenv("JWT_SECRET"),
		JwtAccessMinutes:  getEnvInt("JWT_ACCESS_MINUTES", 15),
		JwtRefreshHours:   getEnvInt("JWT_REFRESH_HOURS", 168),
		AllowedOriginsRaw: getEnv("ALLOWED_ORIGINS", ""),
	}

	missing := []string{}
	if cfg.DbDsn == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	policy, err := loadShiftPolicy()
	if err != nil {
		return cfg, err
	}
	cfg.Shift = policy

	return cfg, nil
}

func loadShiftPolicy() (shift.Policy, error) {
	var policy shift.Policy
	var err error

	if policy.ShiftStart, err = getEnvClock("SHIFT_START", "10:00"); err != nil {
		return policy, err
	}
	if policy.ShiftEnd, err = getEnvClock("SHIFT_END", "19:00"); err != nil {
		return policy, err
	}
	if policy.GraceDeadline, err = getEnvClock("GRACE_DEADLINE", "10:15"); err != nil {
		return policy, err
	}
	policy.RequiredWork = time.Duration(getEnvInt("REQUIRED_WORK_HOURS", 8)) * time.Hour

	raw := getEnv("BREAK_WINDOWS", "morning=11:30/15m,lunch=14:00/45m,evening=16:30/15m")
	policy.Breaks, err = parseBreakWindows(raw)
	if err != nil {
		return policy, err
	}
	return policy, nil
}

// parseBreakWindows reads "flag=HH:MM/duration" entries, comma
// separated, e.g. "lunch=14:00/45m".
func parseBreakWindows(raw string) ([]shift.BreakWindow, error) {
	windows := []shift.BreakWindow{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		flag, rest, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid break window %q", entry)
		}
		endRaw, durRaw, ok := strings.Cut(rest, "/")
		if !ok {
			return nil, fmt.Errorf("invalid break window %q", entry)
		}
		end, err := shift.ParseTimeOfDay(endRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid break window %q: %w", entry, err)
		}
		duration, err := time.ParseDuration(durRaw)
		if err != nil || duration <= 0 {
			return nil, fmt.Errorf("invalid break window %q", entry)
		}
		windows = append(windows, shift.BreakWindow{
			End:      end,
			Duration: duration,
			Flag:     strings.TrimSpace(flag),
		})
	}
	return windows, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvClock(key, fallback string) (shift.TimeOfDay, error) {
	value := getEnv(key, fallback)
	parsed, err := shift.ParseTimeOfDay(value)
	if err != nil {
		return shift.TimeOfDay{}, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

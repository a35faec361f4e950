package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

func parseSport(raw string) (sport.Sport, error) {
	sp, err := sport.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("--sport: %w", err)
	}
	return sp, nil
}

// parseDay reads YYYY-MM-DD in loc; an empty value means today in loc.
func parseDay(raw string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.In(loc), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
	}
	return day, nil
}

// parseStatLine reads "name=value,name=value". Repeated names are summed.
func parseStatLine(raw string) (statline.Line, error) {
	line := make(statline.Line)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--stats entry %q must be name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("--stats %s: %w", name, err)
		}
		line.Add(name, v)
	}
	return line, nil
}

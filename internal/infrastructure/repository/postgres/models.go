package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID          string    `db:"id"`
	Sport       string    `db:"sport"`
	UpstreamID  int64     `db:"upstream_id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	DisplayName string    `db:"display_name"`
	Position    string    `db:"position"`
	TeamName    string    `db:"team_name"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	ID          string `db:"id"`
	Sport       string `db:"sport"`
	UpstreamID  int64  `db:"upstream_id"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	DisplayName string `db:"display_name"`
	Position    string `db:"position"`
	TeamName    string `db:"team_name"`
}

type dailyStatTableModel struct {
	PlayerID string    `db:"player_id"`
	StatDate time.Time `db:"stat_date"`
	Stats    []byte    `db:"stats"`
}

type dailyStatInsertModel struct {
	Sport    string `db:"sport"`
	PlayerID string `db:"player_id"`
	StatDate string `db:"stat_date"`
	Stats    string `db:"stats"`
}

type weeklyStatTableModel struct {
	PlayerID string `db:"player_id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	Stats    []byte `db:"stats"`
}

type weeklyStatInsertModel struct {
	Sport    string `db:"sport"`
	PlayerID string `db:"player_id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	Stats    string `db:"stats"`
}

type rulesetTableModel struct {
	ID            int64     `db:"id"`
	Sport         string    `db:"sport"`
	Name          string    `db:"name"`
	SchemaVersion int       `db:"schema_version"`
	Weights       []byte    `db:"weights"`
	Fingerprint   string    `db:"fingerprint"`
	CreatedAt     time.Time `db:"created_at"`
}

type rulesetInsertModel struct {
	Sport         string `db:"sport"`
	Name          string `db:"name"`
	SchemaVersion int    `db:"schema_version"`
	Weights       string `db:"weights"`
	Fingerprint   string `db:"fingerprint"`
}

type leagueTableModel struct {
	ID          int64         `db:"id"`
	Name        string        `db:"name"`
	Sport       string        `db:"sport"`
	RulesetID   sql.NullInt64 `db:"ruleset_id"`
	Season      int           `db:"season"`
	CurrentWeek int           `db:"current_week"`
	SeasonStart sql.NullTime  `db:"season_start"`
}

type assignmentTableModel struct {
	LeagueID         int64         `db:"league_id"`
	PlayerID         string        `db:"player_id"`
	TeamID           sql.NullInt64 `db:"team_id"`
	StartingPosition string        `db:"starting_position"`
}

type performanceTableModel struct {
	Week             int     `db:"week"`
	PlayerID         string  `db:"player_id"`
	LeagueID         int64   `db:"league_id"`
	StartingPosition string  `db:"starting_position"`
	FantasyPoints    float64 `db:"fantasy_points"`
}

type matchupTableModel struct {
	ID         int64   `db:"id"`
	LeagueID   int64   `db:"league_id"`
	Week       int     `db:"week"`
	HomeTeamID int64   `db:"home_team_id"`
	AwayTeamID int64   `db:"away_team_id"`
	HomeScore  float64 `db:"home_score"`
	AwayScore  float64 `db:"away_score"`
}

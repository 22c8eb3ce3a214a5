// Package model defines the activity snapshot and reward data types.
package model

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical day key format. Lexicographic order of keys
// in this layout is chronological order.
const DateLayout = "2006-01-02"

// Pills holds the two daily pill intakes.
type Pills struct {
	Morning bool `json:"morning"`
	Evening bool `json:"evening"`
}

// Drinks holds the drink counters and beverage flags of a day.
type Drinks struct {
	Water           int  `json:"water"`
	Coffee          int  `json:"coffee"`
	SlimCoffee      bool `json:"slim_coffee"`
	GingerGarlicTea bool `json:"ginger_garlic_tea"`
	WaterCure       bool `json:"water_cure"`
	Sport           bool `json:"sport"`
}

// DayRecord is the activity recorded for one calendar day.
type DayRecord struct {
	Date     string     `json:"date"`
	Pills    Pills      `json:"pills"`
	Drinks   Drinks     `json:"drinks"`
	Weight   *float64   `json:"weight,omitempty"`
	WeightAt *time.Time `json:"weight_at,omitempty"`
}

// WaterUnits returns the water counter, never negative.
func (d DayRecord) WaterUnits() int {
	return max(d.Drinks.Water, 0)
}

// CoffeeUnits returns the coffee counter, never negative.
func (d DayRecord) CoffeeUnits() int {
	return max(d.Drinks.Coffee, 0)
}

// HasWeight reports whether a usable weight was recorded that day.
func (d DayRecord) HasWeight() bool {
	return d.Weight != nil && !math.IsNaN(*d.Weight) && !math.IsInf(*d.Weight, 0)
}

// BothPills reports whether morning and evening pills were taken.
func (d DayRecord) BothPills() bool {
	return d.Pills.Morning && d.Pills.Evening
}

// CycleLog holds the wellness metrics logged for one day. Metrics use a
// 1-10 scale; nil means not logged. Flow is only meaningful when Period is set.
type CycleLog struct {
	Mood     *int            `json:"mood,omitempty"`
	Energy   *int            `json:"energy,omitempty"`
	Pain     *int            `json:"pain,omitempty"`
	Sleep    *int            `json:"sleep,omitempty"`
	Stress   *int            `json:"stress,omitempty"`
	Appetite *int            `json:"appetite,omitempty"`
	Cravings *int            `json:"cravings,omitempty"`
	Focus    *int            `json:"focus,omitempty"`
	Libido   *int            `json:"libido,omitempty"`
	Symptoms map[string]bool `json:"symptoms,omitempty"`
	Period   bool            `json:"period,omitempty"`
	Flow     *int            `json:"flow,omitempty"`
}

// Photo is one gallery entry. Only counts and capture times matter here.
type Photo struct {
	ID      string    `json:"id"`
	TakenAt time.Time `json:"taken_at"`
}

// Profile holds the user profile fields checked for completeness.
type Profile struct {
	Name     string   `json:"name,omitempty"`
	DOB      string   `json:"dob,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	HeightCM *float64 `json:"height_cm,omitempty"`
}

// Complete reports whether every required profile field is present and non-empty.
func (p Profile) Complete() bool {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.DOB) == "" || strings.TrimSpace(p.Gender) == "" {
		return false
	}
	return p.HeightCM != nil && *p.HeightCM > 0
}

// ValidGenders are the accepted profile gender values.
var ValidGenders = map[string]bool{
	"female": true,
	"male":   true,
	"other":  true,
	"na":     true,
}

// Snapshot is the read-only view of a user's activity at recomputation time.
type Snapshot struct {
	Days         map[string]DayRecord `json:"days"`
	CycleLogs    map[string]CycleLog  `json:"cycle_logs,omitempty"`
	Gallery      map[string][]Photo   `json:"gallery,omitempty"`
	Profile      Profile              `json:"profile"`
	ChatMessages int                  `json:"chat_messages"`
	SavedTips    int                  `json:"saved_tips"`

	// AsOf anchors rolling-window rules. Location is used for hour-of-day rules
	// and defaults to UTC.
	AsOf     time.Time      `json:"as_of"`
	Location *time.Location `json:"-"`
}

// Loc returns the snapshot's location, falling back to UTC.
func (s *Snapshot) Loc() *time.Location {
	if s == nil || s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// ParseDate parses a canonical day key.
func ParseDate(key string) (time.Time, error) {
	return time.Parse(DateLayout, key)
}

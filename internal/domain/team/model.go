package team

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrGeoQuery marks failures of the store's proximity search, such as a
// malformed point or a missing geospatial index.
var ErrGeoQuery = errors.New("geo query failed")

type Sport string

const (
	SportSoccer     Sport = "soccer"
	SportBasketball Sport = "basketball"
	SportTennis     Sport = "tennis"
	SportCricket    Sport = "cricket"
	SportVolleyball Sport = "volleyball"
	SportBadminton  Sport = "badminton"
	SportRugby      Sport = "rugby"
	SportHockey     Sport = "hockey"
	SportOther      Sport = "other"
)

var sports = []Sport{
	SportSoccer, SportBasketball, SportTennis, SportCricket, SportVolleyball,
	SportBadminton, SportRugby, SportHockey, SportOther,
}

func (s Sport) Valid() bool {
	return slices.Contains(sports, s)
}

type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Weekday) Valid() bool {
	return slices.Contains(weekdays, d)
}

type Timeslot string

const (
	TimeslotMorning   Timeslot = "morning"
	TimeslotAfternoon Timeslot = "afternoon"
	TimeslotEvening   Timeslot = "evening"
	TimeslotAny       Timeslot = "any"
)

var timeslots = []Timeslot{TimeslotMorning, TimeslotAfternoon, TimeslotEvening, TimeslotAny}

func (t Timeslot) Valid() bool {
	return slices.Contains(timeslots, t)
}

// PointType is the only GeoJSON geometry teams are stored with.
const PointType = "Point"

// Point is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type Point struct {
	Type        string
	Coordinates []float64
}

func NewPoint(lng, lat float64) Point {
	return Point{Type: PointType, Coordinates: []float64{lng, lat}}
}

func (p Point) Longitude() float64 {
	if len(p.Coordinates) < 1 {
		return 0
	}
	return p.Coordinates[0]
}

func (p Point) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

func (p Point) Validate() error {
	if p.Type != PointType {
		return fmt.Errorf("location type must be %q", PointType)
	}
	if len(p.Coordinates) != 2 {
		return fmt.Errorf("location must have exactly 2 coordinates, got %d", len(p.Coordinates))
	}
	if lng := p.Longitude(); lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range", lng)
	}
	if lat := p.Latitude(); lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range", lat)
	}
	return nil
}

type Availability struct {
	Days     []Weekday
	Timeslot Timeslot
}

// Team is an amateur side looking for opponents.
type Team struct {
	ID           string
	OwnerUID     string
	Name         string
	Sport        Sport
	Location     Point
	Address      *string
	Players      []string
	Availability Availability
	DeviceTokens []string
}

// Normalize fills the defaults a freshly decoded record may be missing.
func (t Team) Normalize() Team {
	if t.Location.Type == "" {
		t.Location.Type = PointType
	}
	if t.Players == nil {
		t.Players = []string{}
	}
	if t.Availability.Days == nil {
		t.Availability.Days = []Weekday{}
	}
	if t.Availability.Timeslot == "" {
		t.Availability.Timeslot = TimeslotAny
	}
	if t.DeviceTokens == nil {
		t.DeviceTokens = []string{}
	}
	return t
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.OwnerUID) == "" {
		return fmt.Errorf("team owner uid is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if !t.Sport.Valid() {
		return fmt.Errorf("unknown sport %q", t.Sport)
	}
	if err := t.Location.Validate(); err != nil {
		return err
	}
	for _, day := range t.Availability.Days {
		if !day.Valid() {
			return fmt.Errorf("unknown availability day %q", day)
		}
	}
	if !t.Availability.Timeslot.Valid() {
		return fmt.Errorf("unknown availability timeslot %q", t.Availability.Timeslot)
	}

	return nil
}

// NearbyQuery describes a proximity search around a point.
type NearbyQuery struct {
	Longitude     float64
	Latitude      float64
	MaxDistanceKm float64
	Sport         Sport
	Timeslot      Timeslot
	Limit         int
}

// MaxDistanceMeters truncates the radius to whole meters like the store expects.
func (q NearbyQuery) MaxDistanceMeters() int64 {
	return int64(q.MaxDistanceKm * 1000)
}

type ListFilter struct {
	Sport Sport
	Limit int
}

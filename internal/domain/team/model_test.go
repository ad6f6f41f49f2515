package team

import (
	"strings"
	"testing"
)

func validTeam() Team {
	return Team{
		OwnerUID: "uid-1",
		Name:     "Sunday Strikers",
		Sport:    SportSoccer,
		Location: NewPoint(106.8272, -6.1754),
		Availability: Availability{
			Days:     []Weekday{Saturday, Sunday},
			Timeslot: TimeslotMorning,
		},
	}
}

func TestTeam_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Team)
		wantErr string
	}{
		{name: "valid", mutate: func(*Team) {}},
		{name: "missing owner", mutate: func(tm *Team) { tm.OwnerUID = " " }, wantErr: "owner uid"},
		{name: "missing name", mutate: func(tm *Team) { tm.Name = "" }, wantErr: "name"},
		{name: "unknown sport", mutate: func(tm *Team) { tm.Sport = "curling" }, wantErr: "unknown sport"},
		{name: "three coordinates", mutate: func(tm *Team) { tm.Location.Coordinates = []float64{1, 2, 3} }, wantErr: "exactly 2"},
		{name: "latitude out of range", mutate: func(tm *Team) { tm.Location = NewPoint(0, 91) }, wantErr: "latitude"},
		{name: "unknown day", mutate: func(tm *Team) { tm.Availability.Days = []Weekday{"funday"} }, wantErr: "day"},
		{name: "unknown timeslot", mutate: func(tm *Team) { tm.Availability.Timeslot = "night" }, wantErr: "timeslot"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := validTeam()
			tc.mutate(&item)

			err := item.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid team, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTeam_NormalizeFillsDefaults(t *testing.T) {
	item := Team{Location: Point{Coordinates: []float64{1, 2}}}.Normalize()

	if item.Location.Type != PointType {
		t.Fatalf("expected location type %q, got %q", PointType, item.Location.Type)
	}
	if item.Availability.Timeslot != TimeslotAny {
		t.Fatalf("expected default timeslot any, got %q", item.Availability.Timeslot)
	}
	if item.Players == nil || item.DeviceTokens == nil || item.Availability.Days == nil {
		t.Fatalf("expected empty slices instead of nil: %+v", item)
	}
}

func TestNearbyQuery_MaxDistanceMeters(t *testing.T) {
	q := NearbyQuery{MaxDistanceKm: 2.5005}
	if got := q.MaxDistanceMeters(); got != 2500 {
		t.Fatalf("expected 2500 meters, got %d", got)
	}
}

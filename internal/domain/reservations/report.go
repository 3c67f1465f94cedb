package reservations

type ReportOutcome string

const (
	OutcomeListed         ReportOutcome = "listed"
	OutcomeNoRooms        ReportOutcome = "no_rooms"
	OutcomeNoReservations ReportOutcome = "no_reservations"
)

type ReportEntry struct {
	ID   string `json:"id"`
	Time string `json:"time"`
	Name string `json:"name"`
}

// RoomReport lists one room's reservations for the day. No entries means the
// room is free that day.
type RoomReport struct {
	Room    string        `json:"room"`
	Entries []ReportEntry `json:"entries"`
}

type DayReport struct {
	Date    string        `json:"date"`
	Outcome ReportOutcome `json:"outcome"`
	Rooms   []RoomReport  `json:"rooms"`
}

func buildDayReport(date string, rooms []Room, reservations []Reservation) DayReport {
	report := DayReport{Date: date, Rooms: make([]RoomReport, 0, len(rooms))}

	if len(rooms) == 0 {
		report.Outcome = OutcomeNoRooms
		return report
	}

	found := false
	for _, room := range rooms {
		entries := make([]ReportEntry, 0)
		for _, r := range reservations {
			if r.Date == date && r.Place == room.Name {
				entries = append(entries, ReportEntry{ID: r.ID.String(), Time: r.Time, Name: r.Name})
			}
		}

		if len(entries) > 0 {
			found = true
		}
		report.Rooms = append(report.Rooms, RoomReport{Room: room.Name, Entries: entries})
	}

	if found {
		report.Outcome = OutcomeListed
	} else {
		report.Outcome = OutcomeNoReservations
	}

	return report
}

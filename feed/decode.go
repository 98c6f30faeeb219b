package feed

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"
)

// Decode unpacks a zipped feed archive into an in-memory Feed.
//
// A row that can't be parsed (bad time string, missing id) is
// dropped, and decoding continues: one broken row must never take
// down the whole feed. Missing files, on the other hand, mean the
// archive itself is unusable.
func Decode(buf []byte) (*Feed, error) {
	file := map[string]io.ReadCloser{
		"routes.txt":         nil,
		"stops.txt":          nil,
		"trips.txt":          nil,
		"stop_times.txt":     nil,
		"calendar.txt":       nil,
		"calendar_dates.txt": nil,
	}

	defer func() {
		for _, rc := range file {
			if rc != nil {
				rc.Close()
			}
		}
	}()

	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("unzipping: %w", err)
	}

	for _, f := range r.File {
		// There should not be any subdirectories. But, some
		// agencies don't care.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		fName := path[len(path)-1]

		if _, found := file[fName]; !found {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}

		file[fName] = rc
	}

	for _, required := range []string{"routes.txt", "stops.txt", "trips.txt", "stop_times.txt"} {
		if file[required] == nil {
			return nil, fmt.Errorf("missing %s", required)
		}
	}

	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	routes, err := ParseRoutes(file["routes.txt"])
	if err != nil {
		return nil, fmt.Errorf("parsing routes.txt: %w", err)
	}

	stops, err := ParseStops(file["stops.txt"])
	if err != nil {
		return nil, fmt.Errorf("parsing stops.txt: %w", err)
	}

	trips, err := ParseTrips(file["trips.txt"])
	if err != nil {
		return nil, fmt.Errorf("parsing trips.txt: %w", err)
	}

	// Calendar files are optional. A feed without calendar data
	// simply has no active services, which callers treat as "no
	// scheduled service" rather than an error.
	calendars := []*Calendar{}
	if file["calendar.txt"] != nil {
		calendars, err = ParseCalendar(file["calendar.txt"])
		if err != nil {
			return nil, fmt.Errorf("parsing calendar.txt: %w", err)
		}
	}

	calendarDates := []*CalendarDate{}
	if file["calendar_dates.txt"] != nil {
		calendarDates, err = ParseCalendarDates(file["calendar_dates.txt"])
		if err != nil {
			return nil, fmt.Errorf("parsing calendar_dates.txt: %w", err)
		}
	}

	stopTimes, err := ParseStopTimes(file["stop_times.txt"])
	if err != nil {
		return nil, fmt.Errorf("parsing stop_times.txt: %w", err)
	}

	return &Feed{
		Routes:        routes,
		Trips:         trips,
		Stops:         stops,
		Calendars:     calendars,
		CalendarDates: calendarDates,
		StopTimes:     stopTimes,
	}, nil
}

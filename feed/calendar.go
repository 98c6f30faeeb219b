package feed

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

type CalendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    string `csv:"monday"`
	Tuesday   string `csv:"tuesday"`
	Wednesday string `csv:"wednesday"`
	Thursday  string `csv:"thursday"`
	Friday    string `csv:"friday"`
	Saturday  string `csv:"saturday"`
	Sunday    string `csv:"sunday"`
}

func ParseCalendar(data io.Reader) ([]*Calendar, error) {
	calendarCsv := []*CalendarCSV{}
	if err := gocsv.Unmarshal(data, &calendarCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar csv: %w", err)
	}

	calendars := []*Calendar{}
	for _, c := range calendarCsv {
		if c.ServiceID == "" {
			continue
		}

		if _, err := time.ParseInLocation("20060102", c.StartDate, time.UTC); err != nil {
			continue
		}
		if _, err := time.ParseInLocation("20060102", c.EndDate, time.UTC); err != nil {
			continue
		}

		flags := []struct {
			value string
			day   time.Weekday
		}{
			{c.Monday, time.Monday},
			{c.Tuesday, time.Tuesday},
			{c.Wednesday, time.Wednesday},
			{c.Thursday, time.Thursday},
			{c.Friday, time.Friday},
			{c.Saturday, time.Saturday},
			{c.Sunday, time.Sunday},
		}

		var weekday int8
		for _, f := range flags {
			if f.value == "1" {
				weekday |= 1 << f.day
			}
		}

		calendars = append(calendars, &Calendar{
			ServiceID: c.ServiceID,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Weekday:   weekday,
		})
	}

	return calendars, nil
}

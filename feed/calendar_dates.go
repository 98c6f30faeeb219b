package feed

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
)

type CalendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType string `csv:"exception_type"`
}

func ParseCalendarDates(data io.Reader) ([]*CalendarDate, error) {
	calendarDateCsv := []*CalendarDateCSV{}
	if err := gocsv.Unmarshal(data, &calendarDateCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates csv: %w", err)
	}

	calendarDates := []*CalendarDate{}
	for _, cd := range calendarDateCsv {
		if cd.ServiceID == "" {
			continue
		}
		excType, err := strconv.Atoi(cd.ExceptionType)
		if err != nil || excType < 1 || excType > 2 {
			continue
		}
		if _, err := time.ParseInLocation("20060102", cd.Date, time.UTC); err != nil {
			continue
		}

		calendarDates = append(calendarDates, &CalendarDate{
			ServiceID:     cd.ServiceID,
			Date:          cd.Date,
			ExceptionType: ExceptionType(excType),
		})
	}

	return calendarDates, nil
}

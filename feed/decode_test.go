package feed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxtransit/stationboard/feed"
	"github.com/luxtransit/stationboard/testutil"
)

func TestDecode(t *testing.T) {
	buf := testutil.BuildZip(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name",
			"r1,TGV,Paris - Luxembourg",
			"r2,RE,Regional Express",
		},
		"stops.txt": {
			"stop_id,stop_name",
			`s1,"Troisvierges, Gare"`,
			`s2,"Luxembourg, Gare Centrale"`,
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			`t1,r1,weekday,"Luxembourg, Gare Centrale"`,
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time",
			"t1,s1,1,08:00:00",
			"t1,s2,2,09:15:30",
		},
		"calendar.txt": {
			"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday",
			"weekday,20240101,20241231,1,1,1,1,1,0,0",
		},
		"calendar_dates.txt": {
			"service_id,date,exception_type",
			"weekday,20240325,2",
			"special,20240325,1",
		},
	})

	f, err := feed.Decode(buf)
	require.NoError(t, err)

	assert.Len(t, f.Routes, 2)
	assert.Equal(t, "TGV", f.Routes["r1"].ShortName)

	assert.Len(t, f.Stops, 2)
	assert.Len(t, f.Trips, 1)
	assert.Equal(t, "weekday", f.Trips["t1"].ServiceID)

	require.Len(t, f.StopTimes, 2)
	assert.Equal(t, "080000", f.StopTimes[0].Arrival)
	assert.Equal(t, "091530", f.StopTimes[1].Arrival)
	assert.Equal(t, uint32(2), f.StopTimes[1].StopSequence)
	assert.Equal(t,
		9*time.Hour+15*time.Minute+30*time.Second,
		f.StopTimes[1].ArrivalTime(),
	)

	require.Len(t, f.Calendars, 1)
	cal := f.Calendars[0]
	assert.Equal(t, "weekday", cal.ServiceID)
	assert.NotZero(t, cal.Weekday&(1<<time.Monday))
	assert.NotZero(t, cal.Weekday&(1<<time.Friday))
	assert.Zero(t, cal.Weekday&(1<<time.Saturday))

	require.Len(t, f.CalendarDates, 2)
	assert.Equal(t, feed.ExceptionRemoved, f.CalendarDates[0].ExceptionType)
	assert.Equal(t, feed.ExceptionAdded, f.CalendarDates[1].ExceptionType)
}

func TestDecodeMissingRequiredFile(t *testing.T) {
	buf := testutil.BuildZip(t, map[string][]string{
		"routes.txt": {"route_id,route_short_name"},
		"stops.txt":  {"stop_id,stop_name"},
		"trips.txt":  {"trip_id,route_id,service_id"},
		// no stop_times.txt
	})

	_, err := feed.Decode(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop_times.txt")
}

func TestDecodeCalendarOptional(t *testing.T) {
	f := testutil.BuildFeed(t, map[string][]string{})
	assert.Empty(t, f.Calendars)
	assert.Empty(t, f.CalendarDates)
}

func TestDecodeNotAZip(t *testing.T) {
	_, err := feed.Decode([]byte("not a zip archive"))
	require.Error(t, err)
}

// A single malformed row is dropped without aborting the rest of the
// file.
func TestDecodeSkipsMalformedRows(t *testing.T) {
	f := testutil.BuildFeed(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name",
			"s1,Gare",
		},
		"trips.txt": {
			"trip_id,route_id,service_id",
			"t1,r1,weekday",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time",
			"t1,s1,1,08:00:00",
			"t1,s1,woops,08:30:00", // bad sequence
			"t1,s1,2,8h45",         // bad time
			"t1,s1,3,25:99:00",     // bad minute
			",s1,4,09:00:00",       // missing trip_id
			"t1,s1,5,09:30:00",
		},
		"calendar.txt": {
			"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday",
			"weekday,20240101,20241231,1,1,1,1,1,0,0",
			"broken,2024-01-01,20241231,1,1,1,1,1,0,0", // bad start_date
		},
		"calendar_dates.txt": {
			"service_id,date,exception_type",
			"weekday,20240325,2",
			"weekday,20240326,9", // bad exception_type
		},
	})

	require.Len(t, f.StopTimes, 2)
	assert.Equal(t, "080000", f.StopTimes[0].Arrival)
	assert.Equal(t, "093000", f.StopTimes[1].Arrival)

	require.Len(t, f.Calendars, 1)
	assert.Equal(t, "weekday", f.Calendars[0].ServiceID)

	require.Len(t, f.CalendarDates, 1)
	assert.Equal(t, "20240325", f.CalendarDates[0].Date)
}

// Hour values beyond 23 are legal post-midnight encodings and must
// survive normalization.
func TestDecodeKeepsPostMidnightTimes(t *testing.T) {
	f := testutil.BuildFeed(t, map[string][]string{
		"trips.txt": {
			"trip_id,route_id,service_id",
			"t1,r1,weekday",
		},
		"stops.txt": {
			"stop_id,stop_name",
			"s1,Gare",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time",
			"t1,s1,1,25:15:00",
		},
	})

	require.Len(t, f.StopTimes, 1)
	assert.Equal(t, "251500", f.StopTimes[0].Arrival)
	assert.Equal(t, 25*time.Hour+15*time.Minute, f.StopTimes[0].ArrivalTime())
}

// The seconds component of a stop time is optional; rows written as
// HH:MM normalize with zero seconds instead of being dropped.
func TestDecodeAcceptsTimesWithoutSeconds(t *testing.T) {
	f := testutil.BuildFeed(t, map[string][]string{
		"trips.txt": {
			"trip_id,route_id,service_id",
			"t1,r1,weekday",
		},
		"stops.txt": {
			"stop_id,stop_name",
			"s1,Gare",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time",
			"t1,s1,1,8:00",
			"t1,s1,2,25:15",
		},
	})

	require.Len(t, f.StopTimes, 2)
	assert.Equal(t, "080000", f.StopTimes[0].Arrival)
	assert.Equal(t, "251500", f.StopTimes[1].Arrival)
	assert.Equal(t, 25*time.Hour+15*time.Minute, f.StopTimes[1].ArrivalTime())
}

// Feeds published with a UTF-8 BOM and entries nested in a directory
// both occur in the wild.
func TestDecodeBOMAndSubdirectories(t *testing.T) {
	buf := testutil.BuildZip(t, map[string][]string{
		"routes.txt":        {"\ufeffroute_id,route_short_name", "r1,TGV"},
		"gtfs/stops.txt":    {"stop_id,stop_name", "s1,Gare"},
		"trips.txt":         {"trip_id,route_id,service_id", "t1,r1,weekday"},
		"stop_times.txt":    {"trip_id,stop_id,stop_sequence,arrival_time", "t1,s1,1,08:00:00"},
		"unrelated/junk.md": {"ignore me"},
	})

	f, err := feed.Decode(buf)
	require.NoError(t, err)

	assert.Equal(t, "TGV", f.Routes["r1"].ShortName)
	assert.Equal(t, "Gare", f.Stops["s1"].Name)
}

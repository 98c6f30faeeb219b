package feed

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

type StopTimeCSV struct {
	TripID       string `csv:"trip_id"`
	StopID       string `csv:"stop_id"`
	StopSequence string `csv:"stop_sequence"`
	ArrivalTime  string `csv:"arrival_time"`
}

// Normalizes a feed time string to HHMMSS. The seconds component is
// optional, so "8:00:00", "08:00:00" and "25:15" are all accepted.
// Hours up to 99 are legal: values of 24 and beyond encode
// post-midnight times on the same service day.
func parseStopTimeTime(s string) (string, error) {
	split := strings.Split(s, ":")
	if len(split) != 2 && len(split) != 3 {
		return "", fmt.Errorf("found %d parts in '%s'", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		j, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return "", fmt.Errorf("non-integer in '%s' pos %d", s, i)
		}
		hms[i] = j
	}

	if hms[0] < 0 || hms[0] > 99 {
		return "", fmt.Errorf("invalid hour in '%s'", s)
	}

	if hms[1] < 0 || hms[1] > 59 {
		return "", fmt.Errorf("invalid minute in '%s'", s)
	}

	if hms[2] < 0 || hms[2] > 59 {
		return "", fmt.Errorf("invalid second in '%s'", s)
	}

	return fmt.Sprintf("%02d%02d%02d", hms[0], hms[1], hms[2]), nil
}

func ParseStopTimes(data io.Reader) ([]*StopTime, error) {
	stopTimes := []*StopTime{}

	err := gocsv.UnmarshalToCallbackWithError(data, func(st *StopTimeCSV) error {
		if st.TripID == "" || st.StopID == "" {
			return nil
		}

		seq, err := strconv.ParseUint(strings.TrimSpace(st.StopSequence), 10, 32)
		if err != nil {
			return nil
		}

		arrival, err := parseStopTimeTime(st.ArrivalTime)
		if err != nil {
			return nil
		}

		stopTimes = append(stopTimes, &StopTime{
			TripID:       st.TripID,
			StopID:       st.StopID,
			StopSequence: uint32(seq),
			Arrival:      arrival,
		})

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling stop_times csv")
	}

	return stopTimes, nil
}

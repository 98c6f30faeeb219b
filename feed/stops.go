package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

type StopCSV struct {
	ID   string `csv:"stop_id"`
	Name string `csv:"stop_name"`
}

func ParseStops(data io.Reader) (map[string]*Stop, error) {
	stopCsv := []*StopCSV{}
	if err := gocsv.Unmarshal(data, &stopCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling stops csv: %w", err)
	}

	stops := map[string]*Stop{}
	for _, st := range stopCsv {
		if st.ID == "" {
			continue
		}
		stops[st.ID] = &Stop{
			ID:   st.ID,
			Name: strings.TrimSpace(st.Name),
		}
	}

	return stops, nil
}

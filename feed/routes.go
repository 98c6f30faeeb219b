package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

type RouteCSV struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
}

func ParseRoutes(data io.Reader) (map[string]*Route, error) {
	routeCsv := []*RouteCSV{}
	if err := gocsv.Unmarshal(data, &routeCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling routes csv: %w", err)
	}

	routes := map[string]*Route{}
	for _, r := range routeCsv {
		if r.ID == "" {
			continue
		}
		routes[r.ID] = &Route{
			ID:        r.ID,
			ShortName: strings.TrimSpace(r.ShortName),
			LongName:  strings.TrimSpace(r.LongName),
		}
	}

	return routes, nil
}

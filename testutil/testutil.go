package testutil

// Helpers for building zipped feed fixtures in tests.

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxtransit/stationboard/feed"
)

// BuildZip assembles a zip archive from filename → lines.
func BuildZip(t testing.TB, files map[string][]string) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// BuildFeed decodes a fixture archive, filling in (mostly blank)
// dummy data for files the test doesn't care about.
func BuildFeed(t testing.TB, files map[string][]string) *feed.Feed {
	if files["routes.txt"] == nil {
		files["routes.txt"] = []string{"route_id,route_short_name"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"trip_id,route_id,service_id"}
	}
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id,stop_name"}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{"trip_id,stop_id,stop_sequence,arrival_time"}
	}

	f, err := feed.Decode(BuildZip(t, files))
	require.NoError(t, err)

	return f
}

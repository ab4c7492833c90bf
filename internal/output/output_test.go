package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type point struct {
	Lng float64 `json:"lng" yaml:"lng"`
	Lat float64 `json:"lat" yaml:"lat"`
}

func TestNew(t *testing.T) {
	w, err := New(&bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, w.Format())

	w, err = New(&bytes.Buffer{}, " JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, w.Format())

	_, err = New(&bytes.Buffer{}, "xml")
	assert.Error(t, err)
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, FormatTable)
	require.NoError(t, err)

	p := point{Lng: 12958175, Lat: 4825923.77}
	require.NoError(t, w.Write(p, []string{"LNG", "LAT"}, []any{p.Lng, p.Lat}))

	out := buf.String()
	assert.Contains(t, out, "LNG")
	assert.Contains(t, out, "12958175")
	assert.Contains(t, out, "4825923.77")
	assert.NotContains(t, out, "e+07")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, FormatJSON)
	require.NoError(t, err)

	want := point{Lng: 116.404, Lat: 39.915}
	require.NoError(t, w.Write(want, nil))

	var got point
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, FormatYAML)
	require.NoError(t, err)

	want := []point{{Lng: 1, Lat: 2}, {Lng: -3.5, Lat: 4.25}}
	require.NoError(t, w.Write(want, nil))

	var got []point
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestCell(t *testing.T) {
	assert.Equal(t, "20037726.37", cell(20037726.37))
	assert.Equal(t, "0.5", cell(float32(0.5)))
	assert.Equal(t, 42, cell(42))
	assert.Equal(t, "x", cell("x"))
}

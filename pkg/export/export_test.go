package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Name", "Status"},
		Rows: [][]string{
			{"Image Labels", "Active"},
			{"Audio, QA", "Paused"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	assert.Equal(t, "Name,Status\nImage Labels,Active\n\"Audio, QA\",Paused\n", string(out))
}

func TestCSVRenderPadsShortRows(t *testing.T) {
	data := Dataset{
		Headers: []string{"Name", "Status", "Trend"},
		Rows:    [][]string{{"Only Name"}},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Only Name,,\n")
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Metric", "Value"},
		Rows:    [][]string{{"Active Projects", "12"}},
	}

	out, err := NewPDFExporter().Render(data, "Dashboard")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	require.Error(t, err)
}

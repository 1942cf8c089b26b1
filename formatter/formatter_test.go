package formatter

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/line-sections/gtfsrt"
	"github.com/theoremus-urban-solutions/line-sections/line"
)

func sampleLine(t *testing.T) (*line.Line, []line.Station) {
	t.Helper()
	l, err := line.NewLine("l1", "Line <2> & Co", "#00A84D", "R2", "a", "c", 10)
	require.NoError(t, err)
	require.NoError(t, l.AddSection("a", "b", 4))
	stations := []line.Station{
		{ID: "a", Name: "Gangnam", Code: "222", Lat: 37.4979, Lon: 127.0276},
		{ID: "b", Name: "Yeoksam"},
		{ID: "c", Name: "Seolleung"},
	}
	return l, stations
}

func TestWrapLine(t *testing.T) {
	l, stations := sampleLine(t)
	res := WrapLine(l, stations)

	assert.Equal(t, "l1", res.ID)
	assert.Equal(t, 10, res.TotalDistance)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, SectionView{UpStationID: "a", DownStationID: "b", Distance: 4}, res.Sections[0])
	assert.Equal(t, SectionView{UpStationID: "b", DownStationID: "c", Distance: 6}, res.Sections[1])

	empty := WrapLine(l, nil)
	assert.NotNil(t, empty.Stations)
}

func TestBuildJSON(t *testing.T) {
	l, stations := sampleLine(t)
	b, err := BuildJSON(WrapLine(l, stations))
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"totalDistance":10`)
	assert.Contains(t, s, `"upStationId":"a"`)
	assert.Contains(t, s, `"code":"222"`)
}

func TestBuildLineXML(t *testing.T) {
	l, stations := sampleLine(t)
	out := string(BuildLineXML(WrapLine(l, stations)))

	assert.True(t, strings.HasPrefix(out, `<?xml`))
	assert.Contains(t, out, "<Name>Line &lt;2&gt; &amp; Co</Name>")
	assert.Contains(t, out, `<Station id="a" order="0">`)
	assert.Contains(t, out, "<Latitude>37.497900</Latitude>")
	assert.Contains(t, out, "<TotalDistance>10</TotalDistance>")
	assert.NotContains(t, out, "<Code></Code>")

	// well-formed
	var doc struct {
		XMLName  xml.Name `xml:"Line"`
		Name     string   `xml:"Name"`
		Stations []struct {
			ID string `xml:"id,attr"`
		} `xml:"Stations>Station"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Line <2> & Co", doc.Name)
	assert.Len(t, doc.Stations, 3)
}

func TestBuildLinesXML(t *testing.T) {
	l, stations := sampleLine(t)
	out := string(BuildLinesXML([]LineResponse{WrapLine(l, stations), WrapLine(l, stations)}))
	assert.Equal(t, 2, strings.Count(out, "<Line id="))
	assert.True(t, strings.HasSuffix(out, "</Lines>"))
}

func TestWrapVehicles(t *testing.T) {
	res := WrapVehicles("l1", nil)
	assert.NotNil(t, res.Vehicles)
	assert.NotEmpty(t, res.ResponseTimestamp)

	res = WrapVehicles("l1", []gtfsrt.Placement{{Vehicle: gtfsrt.Vehicle{ID: "v"}, StationIndex: 2}})
	assert.Len(t, res.Vehicles, 1)
}

func TestXMLEscape(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;&apos;&amp;", xmlEscape(`<a href="x">'&`))
}

package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/line-sections/line"
)

// BuildLineXML serializes a line response to XML.
func BuildLineXML(res LineResponse) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	writeLineXML(&b, res)
	return []byte(b.String())
}

// BuildLinesXML serializes several line responses under a <Lines> root.
func BuildLinesXML(lines []LineResponse) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("<Lines>")
	for _, l := range lines {
		writeLineXML(&b, l)
	}
	b.WriteString("</Lines>")
	return []byte(b.String())
}

func writeLineXML(b *strings.Builder, res LineResponse) {
	b.WriteString("<Line id=\"")
	b.WriteString(xmlEscape(res.ID))
	b.WriteString("\">")
	writeElement(b, "Name", res.Name)
	writeElement(b, "Color", res.Color)
	writeElement(b, "RouteRef", res.RouteRef)
	b.WriteString("<TotalDistance>")
	b.WriteString(strconv.Itoa(res.TotalDistance))
	b.WriteString("</TotalDistance>")

	b.WriteString("<Stations>")
	for i, st := range res.Stations {
		writeStationXML(b, st, i)
	}
	b.WriteString("</Stations>")

	b.WriteString("<Sections>")
	for _, s := range res.Sections {
		b.WriteString("<Section>")
		writeElement(b, "UpStationRef", s.UpStationID)
		writeElement(b, "DownStationRef", s.DownStationID)
		b.WriteString("<Distance>")
		b.WriteString(strconv.Itoa(s.Distance))
		b.WriteString("</Distance>")
		b.WriteString("</Section>")
	}
	b.WriteString("</Sections>")
	b.WriteString("</Line>")
}

func writeStationXML(b *strings.Builder, st line.Station, order int) {
	b.WriteString("<Station id=\"")
	b.WriteString(xmlEscape(string(st.ID)))
	b.WriteString("\" order=\"")
	b.WriteString(strconv.Itoa(order))
	b.WriteString("\">")
	writeElement(b, "Name", st.Name)
	writeElement(b, "Code", st.Code)
	if st.Lat != 0 || st.Lon != 0 {
		b.WriteString("<Location>")
		b.WriteString("<Latitude>")
		b.WriteString(strconv.FormatFloat(st.Lat, 'f', 6, 64))
		b.WriteString("</Latitude>")
		b.WriteString("<Longitude>")
		b.WriteString(strconv.FormatFloat(st.Lon, 'f', 6, 64))
		b.WriteString("</Longitude>")
		b.WriteString("</Location>")
	}
	b.WriteString("</Station>")
}

// writeElement skips empty values.
func writeElement(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}

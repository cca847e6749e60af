package scene

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// SVG returns the serialized element subtree.
func (e *Element) SVG() []byte {
	var buf bytes.Buffer
	e.writeTo(&buf, 0)
	return buf.Bytes()
}

// WriteSVG writes the element subtree as indented SVG markup. An "svg" root
// without an xmlns attribute gets the SVG namespace.
func (e *Element) WriteSVG(w io.Writer) error {
	_, err := w.Write(e.SVG())
	return err
}

func (e *Element) writeTo(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteByte('<')
	buf.WriteString(e.tag)
	if e.tag == "svg" && depth == 0 {
		if _, ok := e.Attr("xmlns"); !ok {
			writeAttr(buf, "xmlns", svgNamespace)
		}
	}
	for _, a := range e.attrs {
		writeAttr(buf, a.name, a.value)
	}

	if len(e.children) == 0 && e.text == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')

	if len(e.children) == 0 {
		xml.EscapeText(buf, []byte(e.text))
		buf.WriteString("</" + e.tag + ">\n")
		return
	}

	buf.WriteByte('\n')
	if e.text != "" {
		buf.WriteString(strings.Repeat("  ", depth+1))
		xml.EscapeText(buf, []byte(e.text))
		buf.WriteByte('\n')
	}
	for _, c := range e.children {
		c.writeTo(buf, depth+1)
	}
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString("</" + e.tag + ">\n")
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	xml.EscapeText(buf, []byte(value))
	buf.WriteByte('"')
}

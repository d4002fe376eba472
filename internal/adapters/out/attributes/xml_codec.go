// Package attributes serializes product attribute choices into the XML stored on cart entries and order lines.
package attributes

import (
	"encoding/xml"
	"fmt"

	"ordersapi/internal/core/ports"
)

type attributesXML struct {
	XMLName    xml.Name           `xml:"Attributes"`
	Attributes []productAttribute `xml:"ProductAttribute"`
}

type productAttribute struct {
	ID     int              `xml:"ID,attr"`
	Values []attributeValue `xml:"ProductAttributeValue"`
}

type attributeValue struct {
	Value string `xml:"Value"`
}

// XMLCodec implements ports.AttributeCodec. Values sharing an attribute id are grouped under one element
// in order of first appearance.
type XMLCodec struct{}

func NewXMLCodec() *XMLCodec {
	return &XMLCodec{}
}

// Encode returns "" for no values.
func (XMLCodec) Encode(values []ports.AttributeValue) (string, error) {
	if len(values) == 0 {
		return "", nil
	}

	doc := attributesXML{}
	index := make(map[int]int, len(values))
	for _, v := range values {
		pos, ok := index[v.ID]
		if !ok {
			pos = len(doc.Attributes)
			index[v.ID] = pos
			doc.Attributes = append(doc.Attributes, productAttribute{ID: v.ID})
		}
		doc.Attributes[pos].Values = append(doc.Attributes[pos].Values, attributeValue{Value: v.Value})
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode attributes: %w", err)
	}
	return string(out), nil
}

func (XMLCodec) Decode(encoded string) ([]ports.AttributeValue, error) {
	if encoded == "" {
		return nil, nil
	}

	var doc attributesXML
	if err := xml.Unmarshal([]byte(encoded), &doc); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}

	var values []ports.AttributeValue
	for _, attr := range doc.Attributes {
		for _, v := range attr.Values {
			values = append(values, ports.AttributeValue{ID: attr.ID, Value: v.Value})
		}
	}
	return values, nil
}

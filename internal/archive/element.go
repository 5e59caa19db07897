package archive

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	errorJunkAfterRoot   = "junk after document element"
	errorTextOutsideRoot = "text outside document element"
	errorNoElementFound  = "no element found"

	xmlnsPrefix = "xmlns"
)

// element is one node of a structurally parsed archive document. Text holds the character
// data preceding the first child element, so nested markup never leaks into file content.
type element struct {
	Tag        string
	Attributes []xml.Attr
	Text       string
	Children   []*element
}

// decodeDocument parses data as a single well-formed XML document. Any violation of
// well-formedness is reported as *xml.SyntaxError so callers can tell it apart from I/O and
// charset failures.
func decodeDocument(data []byte) (*element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	var rootElement *element
	var openElements []*element
	for {
		token, tokenError := decoder.Token()
		if errors.Is(tokenError, io.EOF) {
			break
		}
		if tokenError != nil {
			return nil, tokenError
		}
		switch typedToken := token.(type) {
		case xml.StartElement:
			if rootElement != nil && len(openElements) == 0 {
				return nil, newSyntaxError(decoder, errorJunkAfterRoot)
			}
			node := &element{
				Tag:        typedToken.Name.Local,
				Attributes: append([]xml.Attr(nil), typedToken.Attr...),
			}
			if len(openElements) == 0 {
				rootElement = node
			} else {
				parentElement := openElements[len(openElements)-1]
				parentElement.Children = append(parentElement.Children, node)
			}
			openElements = append(openElements, node)
		case xml.EndElement:
			openElements = openElements[:len(openElements)-1]
		case xml.CharData:
			if len(openElements) == 0 {
				if len(bytes.TrimSpace(typedToken)) > 0 {
					return nil, newSyntaxError(decoder, errorTextOutsideRoot)
				}
				continue
			}
			currentElement := openElements[len(openElements)-1]
			if len(currentElement.Children) == 0 {
				currentElement.Text += string(typedToken)
			}
		}
	}
	if rootElement == nil {
		return nil, newSyntaxError(decoder, errorNoElementFound)
	}
	return rootElement, nil
}

func newSyntaxError(decoder *xml.Decoder, message string) *xml.SyntaxError {
	line, _ := decoder.InputPos()
	return &xml.SyntaxError{Msg: message, Line: line}
}

// isSyntaxError reports whether err signals a malformed document rather than an I/O failure.
func isSyntaxError(err error) bool {
	var syntaxError *xml.SyntaxError
	return errors.As(err, &syntaxError)
}

// child returns the first direct child named tag.
func (node *element) child(tag string) *element {
	for _, childElement := range node.Children {
		if childElement.Tag == tag {
			return childElement
		}
	}
	return nil
}

// descendants returns every element below node named tag in document order.
func (node *element) descendants(tag string) []*element {
	var matches []*element
	var visit func(current *element)
	visit = func(current *element) {
		for _, childElement := range current.Children {
			if childElement.Tag == tag {
				matches = append(matches, childElement)
			}
			visit(childElement)
		}
	}
	visit(node)
	return matches
}

// containedChildren returns the children named childTag of every descendant named containerTag,
// grouped by container in document order.
func (node *element) containedChildren(containerTag, childTag string) []*element {
	var matches []*element
	for _, containerElement := range node.descendants(containerTag) {
		for _, childElement := range containerElement.Children {
			if childElement.Tag == childTag {
				matches = append(matches, childElement)
			}
		}
	}
	return matches
}

// attribute returns the value of the un-namespaced attribute called name.
func (node *element) attribute(name string) (string, bool) {
	for _, attribute := range node.Attributes {
		if isNamespaceDeclaration(attribute.Name) {
			continue
		}
		if attribute.Name.Space == "" && attribute.Name.Local == name {
			return attribute.Value, true
		}
	}
	return "", false
}

// prefixedAttribute returns the value of the first attribute called name that carries a
// namespace prefix, such as r:path. Namespace declarations are not attributes.
func (node *element) prefixedAttribute(name string) (string, bool) {
	for _, attribute := range node.Attributes {
		if isNamespaceDeclaration(attribute.Name) {
			continue
		}
		if attribute.Name.Space != "" && attribute.Name.Local == name {
			return attribute.Value, true
		}
	}
	return "", false
}

func isNamespaceDeclaration(name xml.Name) bool {
	return name.Space == xmlnsPrefix || (name.Space == "" && name.Local == xmlnsPrefix)
}

// attributeOrDefault returns the un-namespaced attribute value, or fallback when absent.
func (node *element) attributeOrDefault(name, fallback string) string {
	if value, found := node.attribute(name); found {
		return value
	}
	return fallback
}

// trimmedText returns the element text without surrounding whitespace.
func (node *element) trimmedText() string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.Text)
}

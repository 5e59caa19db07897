package archive

import (
	"testing"
)

func TestDecodeDocumentSyntaxErrors(t *testing.T) {
	testCases := []struct {
		name     string
		document string
	}{
		{name: "empty", document: ""},
		{name: "whitespace_only", document: " \n\t"},
		{name: "second_root", document: "<a/><b/>"},
		{name: "text_after_root", document: "<a/>trailing"},
		{name: "text_before_root", document: "leading<a/>"},
		{name: "unclosed_element", document: "<a><b></b>"},
		{name: "mismatched_end", document: "<a></b>"},
		{name: "unescaped_less_than", document: "<a>if x < y</a>"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rootElement, decodeError := decodeDocument([]byte(testCase.document))
			if decodeError == nil {
				t.Fatalf("expected syntax error, got root %+v", rootElement)
			}
			if !isSyntaxError(decodeError) {
				t.Fatalf("expected *xml.SyntaxError, got %T: %v", decodeError, decodeError)
			}
		})
	}
}

func TestDecodeDocumentTextPrecedesChildren(t *testing.T) {
	rootElement, decodeError := decodeDocument([]byte(`<?xml version="1.0"?>
<!-- comment -->
<root>lead<child>inner</child>tail<![CDATA[ignored]]></root>`))
	if decodeError != nil {
		t.Fatalf("decodeDocument error: %v", decodeError)
	}
	if rootElement.Tag != "root" {
		t.Fatalf("expected root tag, got %s", rootElement.Tag)
	}
	if rootElement.Text != "lead" {
		t.Fatalf("expected text before first child, got %q", rootElement.Text)
	}
	childElement := rootElement.child("child")
	if childElement == nil || childElement.Text != "inner" {
		t.Fatalf("unexpected child element: %+v", childElement)
	}
}

func TestDecodeDocumentKeepsCDATAContent(t *testing.T) {
	rootElement, decodeError := decodeDocument([]byte(`<file path="a.go"><![CDATA[if a < b { return }]]></file>`))
	if decodeError != nil {
		t.Fatalf("decodeDocument error: %v", decodeError)
	}
	if rootElement.Text != "if a < b { return }" {
		t.Fatalf("unexpected CDATA text %q", rootElement.Text)
	}
	if value, found := rootElement.attribute("path"); !found || value != "a.go" {
		t.Fatalf("expected path attribute a.go, got %q (found %t)", value, found)
	}
	if _, found := rootElement.prefixedAttribute("path"); found {
		t.Fatalf("expected no prefixed path attribute")
	}
}

func TestContainedChildrenFollowsDocumentOrder(t *testing.T) {
	rootElement, decodeError := decodeDocument([]byte(`<project>
<files><file path="1"/><other/><file path="2"/></files>
<section><files><file path="3"/></files></section>
<file path="loose"/>
</project>`))
	if decodeError != nil {
		t.Fatalf("decodeDocument error: %v", decodeError)
	}
	fileElements := rootElement.containedChildren(tagFiles, tagFile)
	expectedPaths := []string{"1", "2", "3"}
	if len(fileElements) != len(expectedPaths) {
		t.Fatalf("expected %d file elements, got %d", len(expectedPaths), len(fileElements))
	}
	for position, fileElement := range fileElements {
		if value, _ := fileElement.attribute("path"); value != expectedPaths[position] {
			t.Fatalf("expected path %s at position %d, got %s", expectedPaths[position], position, value)
		}
	}
	if descendantCount := len(rootElement.descendants(tagFile)); descendantCount != 4 {
		t.Fatalf("expected 4 descendant file elements, got %d", descendantCount)
	}
}

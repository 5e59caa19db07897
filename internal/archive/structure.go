package archive

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/temirov/unmix/internal/types"
	"github.com/temirov/unmix/internal/utils"
)

// StructureLeaf describes a file in the project structure.
type StructureLeaf struct {
	Type     string `json:"type" yaml:"type"`
	Size     string `json:"size" yaml:"size"`
	FileType string `json:"file_type" yaml:"file_type"`
}

// StructureNode is a directory or file of the project structure. Directories keep their
// children in the order the paths first appeared in the archive.
type StructureNode struct {
	leaf        *StructureLeaf
	childNames  []string
	childByName map[string]*StructureNode
}

// BuildProjectStructure derives the nested project structure from record paths. Records with
// empty paths are skipped; a later record replaces an earlier one with the same path.
func BuildProjectStructure(records []types.FileRecord) *StructureNode {
	rootNode := newDirectoryNode()
	for _, record := range records {
		if record.Path == "" {
			continue
		}
		segments := utils.ArchivePathSegments(record.Path)
		currentNode := rootNode
		for segmentIndex, segment := range segments {
			if segmentIndex == len(segments)-1 {
				currentNode.setChild(segment, &StructureNode{leaf: &StructureLeaf{
					Type:     types.NodeTypeFile,
					Size:     record.DeclaredSize,
					FileType: record.ContentType,
				}})
				continue
			}
			nextNode, exists := currentNode.childByName[segment]
			if !exists || nextNode.IsFile() {
				nextNode = newDirectoryNode()
				currentNode.setChild(segment, nextNode)
			}
			currentNode = nextNode
		}
	}
	return rootNode
}

func newDirectoryNode() *StructureNode {
	return &StructureNode{childByName: make(map[string]*StructureNode)}
}

func (node *StructureNode) setChild(name string, child *StructureNode) {
	if _, exists := node.childByName[name]; !exists {
		node.childNames = append(node.childNames, name)
	}
	node.childByName[name] = child
}

// IsFile reports whether node is a file leaf.
func (node *StructureNode) IsFile() bool {
	return node != nil && node.leaf != nil
}

// Leaf returns the file descriptor of a leaf node, or nil for directories.
func (node *StructureNode) Leaf() *StructureLeaf {
	return node.leaf
}

// Names returns the child names of a directory node in insertion order.
func (node *StructureNode) Names() []string {
	return append([]string(nil), node.childNames...)
}

// Child returns the named child of a directory node.
func (node *StructureNode) Child(name string) (*StructureNode, bool) {
	child, exists := node.childByName[name]
	return child, exists
}

// MarshalJSON renders directories as objects whose keys keep insertion order.
func (node *StructureNode) MarshalJSON() ([]byte, error) {
	if node.IsFile() {
		return marshalJSONWithoutEscaping(node.leaf)
	}
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for childIndex, childName := range node.childNames {
		if childIndex > 0 {
			buffer.WriteByte(',')
		}
		encodedName, nameError := marshalJSONWithoutEscaping(childName)
		if nameError != nil {
			return nil, nameError
		}
		buffer.Write(encodedName)
		buffer.WriteByte(':')
		encodedChild, childError := node.childByName[childName].MarshalJSON()
		if childError != nil {
			return nil, childError
		}
		buffer.Write(encodedChild)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalYAML renders directories as mapping nodes whose keys keep insertion order.
func (node *StructureNode) MarshalYAML() (interface{}, error) {
	if node.IsFile() {
		return node.leaf, nil
	}
	mappingNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, childName := range node.childNames {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: childName}
		valueNode := &yaml.Node{}
		if encodeError := valueNode.Encode(node.childByName[childName]); encodeError != nil {
			return nil, encodeError
		}
		mappingNode.Content = append(mappingNode.Content, keyNode, valueNode)
	}
	return mappingNode, nil
}

func marshalJSONWithoutEscaping(value interface{}) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return nil, encodeError
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

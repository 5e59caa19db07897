// Package types defines every cross‑package data structure used by the unmix CLI.
package types

import "strings"

// Format identifies the shape of an archive document.
type Format string

const (
	FormatProject   Format = "project"
	FormatRepomix   Format = "repomix"
	FormatFilesOnly Format = "files_only"
	FormatUnknown   Format = "unknown"
	FormatPlainText Format = "plain_text"

	EncodingBase64 = "base64"
	EncodingUTF8   = "utf-8"

	NodeTypeFile = "file"

	StructureFormatJSON = "json"
	StructureFormatYAML = "yaml"
)

// IsStructured reports whether the format came from a successful structured parse.
func (format Format) IsStructured() bool {
	return format != FormatPlainText && format != ""
}

// FileRecord is one reconstructable file captured from an archive document. EncodingDeclared
// is set when the archive carried an encoding attribute, even an empty one.
type FileRecord struct {
	Path             string
	RawContent       string
	ContentType      string
	DeclaredSize     string
	Mode             string
	Binary           bool
	Encoding         string
	EncodingDeclared bool
}

// ResolvedEncoding returns the declared encoding, or the default implied by Binary when the
// archive declared none.
func (record FileRecord) ResolvedEncoding() string {
	if record.EncodingDeclared || record.Encoding != "" {
		return record.Encoding
	}
	if record.Binary {
		return EncodingBase64
	}
	return EncodingUTF8
}

// IsBase64 reports whether the record content must be base64-decoded before writing.
func (record FileRecord) IsBase64() bool {
	return strings.EqualFold(record.ResolvedEncoding(), EncodingBase64)
}

// MetadataEntry is a single key/value pair of archive metadata.
type MetadataEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// RestoreSummary captures aggregate information about a restore run.
type RestoreSummary struct {
	TotalFiles   int    `json:"totalFiles"`
	TotalBytes   int64  `json:"totalBytes"`
	TotalSize    string `json:"totalSize"`
	TotalTokens  int    `json:"totalTokens,omitempty"`
	Model        string `json:"model,omitempty"`
	OutputRoot   string `json:"outputRoot"`
	EmptyFolders int    `json:"emptyFolders,omitempty"`
}

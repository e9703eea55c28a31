// Package compose reads the metadata document that the ostree commit stage
// leaves at the root of a finished pipeline tree.
package compose

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Filename is the name of the metadata document inside a tree that produced
// an ostree commit.
const Filename = "compose.json"

// Metadata is the document written by the ostree commit stage. OSTreeCommit
// names the commit the tree produced, the remaining fields describe how it
// was written.
type Metadata struct {
	Ref                       string `json:"ref"`
	OSTreeNMetadataTotal      int    `json:"ostree-n-metadata-total"`
	OSTreeNMetadataWritten    int    `json:"ostree-n-metadata-written"`
	OSTreeNContentTotal       int    `json:"ostree-n-content-total"`
	OSTreeNContentWritten     int    `json:"ostree-n-content-written"`
	OSTreeNCacheHits          int    `json:"ostree-n-cache-hits"`
	OSTreeContentBytesWritten int    `json:"ostree-content-bytes-written"`
	OSTreeCommit              string `json:"ostree-commit"`
	OSTreeContentChecksum     string `json:"ostree-content-checksum"`
	OSTreeTimestamp           string `json:"ostree-timestamp"`
	RPMOSTreeInputHash        string `json:"rpm-ostree-inputhash"`
}

// Read loads the metadata document from the root of the given tree. A
// missing document is reported with the underlying *PathError so that
// callers can distinguish it from a malformed one.
func Read(tree string) (*Metadata, error) {
	path := filepath.Join(tree, Filename)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var metadata Metadata
	if err := json.NewDecoder(file).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &metadata, nil
}

package storage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eventpass/backend/internal/domain/shared"
)

// fileIDPattern extracts the file ID segment from a flier view URL.
var fileIDPattern = regexp.MustCompile(`files/([^/]+)/`)

// BuildViewURL renders the public view URL for a stored flier file.
func BuildViewURL(baseURL, bucket, fileID, projectID string) string {
	return fmt.Sprintf("%s/v1/storage/buckets/%s/files/%s/view?project=%s&mode=admin",
		strings.TrimRight(baseURL, "/"), bucket, fileID, projectID)
}

// ExtractFileID pulls the file ID back out of a view URL produced by
// BuildViewURL. Returns an error for URLs that do not contain a file segment.
func ExtractFileID(fileURL string) (string, error) {
	matches := fileIDPattern.FindStringSubmatch(fileURL)
	if len(matches) < 2 {
		return "", shared.NewDomainError("INVALID_FILE_URL", "URL does not reference a stored file")
	}
	return matches[1], nil
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildViewURL(t *testing.T) {
	url := BuildViewURL("https://cloud.example.com", "fliers", "abc123", "proj1")
	assert.Equal(t, "https://cloud.example.com/v1/storage/buckets/fliers/files/abc123/view?project=proj1&mode=admin", url)

	t.Run("trims trailing slash from base", func(t *testing.T) {
		url := BuildViewURL("https://cloud.example.com/", "fliers", "abc123", "proj1")
		assert.Equal(t, "https://cloud.example.com/v1/storage/buckets/fliers/files/abc123/view?project=proj1&mode=admin", url)
	})
}

func TestExtractFileID(t *testing.T) {
	t.Run("round trips through BuildViewURL", func(t *testing.T) {
		url := BuildViewURL("https://cloud.example.com", "fliers", "64f1c2d3e4a5", "proj1")

		fileID, err := ExtractFileID(url)
		require.NoError(t, err)
		assert.Equal(t, "64f1c2d3e4a5", fileID)
	})

	t.Run("rejects URLs without a file segment", func(t *testing.T) {
		_, err := ExtractFileID("https://google.com")
		assert.Error(t, err)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ExtractFileID("")
		assert.Error(t, err)
	})
}

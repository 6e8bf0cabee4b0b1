package turso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

func TestEncodeDecodeDoc_RoundTrip(t *testing.T) {
	sess := domain.NewSession("codec", "testing", "ctx", "sonnet", 15, "user", "dev", "proj", "foreground")
	sess.CodeMetrics = []domain.CodeMetric{{FunctionName: "f", LinesAdded: 3, Complexity: 1}}

	data, err := encodeDoc(sess.ToMap())
	require.NoError(t, err)

	got, err := decodeSession(data)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestDecodeDoc_Malformed(t *testing.T) {
	_, err := decodeDoc("{not json")
	assert.Error(t, err)
}

func TestDecodeSession_MissingID(t *testing.T) {
	_, err := decodeSession(`{"name":"no id"}`)
	assert.Error(t, err)
}

func TestNewDB_RequiresURL(t *testing.T) {
	_, err := NewDB("")
	assert.Error(t, err)
}

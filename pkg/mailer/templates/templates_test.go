package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, textBody, htmlBody, err := Render(Welcome, map[string]any{
		"AppName": "go-social",
		"Name":    "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to go-social", subject)
	assert.Contains(t, textBody, "Hi Alice,")
	assert.Contains(t, htmlBody, "<h2>Welcome, Alice!</h2>")
}

func TestRenderNewFollower(t *testing.T) {
	subject, textBody, htmlBody, err := Render(NewFollower, map[string]any{
		"Name":             "Alice",
		"FollowerName":     "Bob",
		"FollowerUsername": "bob",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bob started following you", subject)
	assert.Contains(t, textBody, "Bob (@bob)")
	assert.Contains(t, htmlBody, "<strong>Bob</strong>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, htmlBody, err := Render(NewFollower, map[string]any{
		"Name":             "Alice",
		"FollowerName":     "<script>x</script>",
		"FollowerUsername": "bob",
	})
	require.NoError(t, err)
	assert.NotContains(t, htmlBody, "<script>")
}

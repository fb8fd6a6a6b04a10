package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWireResponse(t *testing.T) {
	t.Run("decodes reply with partial score and contact", func(t *testing.T) {
		raw := `{
			"response": "Happy to help with that.",
			"leadScore": {"budget": 7, "need": 8.5},
			"contactInfo": {"name": "Dana", "company": "Acme"}
		}`

		resp, err := parseWireResponse(raw)
		require.NoError(t, err)

		assert.Equal(t, "Happy to help with that.", resp.Reply)
		require.NotNil(t, resp.Score.Budget)
		assert.Equal(t, 7.0, *resp.Score.Budget)
		require.NotNil(t, resp.Score.Need)
		assert.Equal(t, 8.5, *resp.Score.Need)
		assert.Nil(t, resp.Score.Authority)
		assert.Nil(t, resp.Score.Timeline)
		assert.Equal(t, "Dana", resp.Contact.Name)
		assert.Equal(t, "Acme", resp.Contact.Company)
	})

	t.Run("reply alone is enough", func(t *testing.T) {
		resp, err := parseWireResponse(`{"response": "Hello"}`)
		require.NoError(t, err)

		assert.Equal(t, "Hello", resp.Reply)
		assert.True(t, resp.Score.IsEmpty())
		assert.Empty(t, resp.Contact)
	})

	t.Run("empty payload", func(t *testing.T) {
		resp, err := parseWireResponse("")
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrEmptyReply)
	})

	t.Run("missing reply text", func(t *testing.T) {
		resp, err := parseWireResponse(`{"leadScore": {"budget": 4}}`)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrEmptyReply)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		resp, err := parseWireResponse(`{"response": "truncated`)
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmptyReply)
	})
}

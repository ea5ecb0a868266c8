package social_test

import (
	"encoding/json"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-board/auth/social"
)

// payload decodes a JSON document the way fiber's body parser would,
// so attribute types match what the callback handler actually sees
func payload(t *testing.T, doc string) map[string]any {
	t.Helper()

	attrs := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(doc), &attrs))
	return attrs
}

func TestNormalize_Google(t *testing.T) {
	t.Run("reads flat top-level attributes", func(t *testing.T) {
		profile, err := social.Normalize(social.ProviderGoogle, payload(t, `{
			"sub": "109876543210987654321",
			"name": "Peter Parker",
			"email": "peter@gmail.com",
			"picture": "https://example.com/p.png"
		}`))

		require.NoError(t, err)
		assert.Equal(t, social.ProviderGoogle, profile.Provider)
		assert.Equal(t, "109876543210987654321", profile.ProviderID)
		assert.Equal(t, "Peter Parker", profile.Name)
		assert.Equal(t, "peter@gmail.com", profile.Email)
	})

	t.Run("missing sub is a payload error", func(t *testing.T) {
		_, err := social.Normalize(social.ProviderGoogle, payload(t, `{"name": "Peter"}`))
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, 400, richErr.Code)
	})

	t.Run("name and email are optional", func(t *testing.T) {
		profile, err := social.Normalize(social.ProviderGoogle, payload(t, `{"sub": "123"}`))
		require.NoError(t, err)
		assert.Equal(t, "123", profile.ProviderID)
		assert.Empty(t, profile.Name)
		assert.Empty(t, profile.Email)
	})
}

func TestNormalize_Naver(t *testing.T) {
	t.Run("reads attributes nested under response", func(t *testing.T) {
		profile, err := social.Normalize(social.ProviderNaver, payload(t, `{
			"resultcode": "00",
			"message": "success",
			"response": {
				"id": "naver-abc-123",
				"name": "Peter Parker",
				"email": "peter@naver.com"
			}
		}`))

		require.NoError(t, err)
		assert.Equal(t, social.ProviderNaver, profile.Provider)
		assert.Equal(t, "naver-abc-123", profile.ProviderID)
		assert.Equal(t, "Peter Parker", profile.Name)
		assert.Equal(t, "peter@naver.com", profile.Email)
	})

	t.Run("missing response object is a payload error", func(t *testing.T) {
		_, err := social.Normalize(social.ProviderNaver, payload(t, `{"resultcode": "00"}`))
		assert.Error(t, err)
	})
}

func TestNormalize_Kakao(t *testing.T) {
	t.Run("reads split account and profile objects", func(t *testing.T) {
		profile, err := social.Normalize(social.ProviderKakao, payload(t, `{
			"id": 2876453120,
			"kakao_account": {
				"email": "peter@kakao.com",
				"profile": {
					"nickname": "Peter Parker"
				}
			}
		}`))

		require.NoError(t, err)
		assert.Equal(t, social.ProviderKakao, profile.Provider)
		assert.Equal(t, "2876453120", profile.ProviderID)
		assert.Equal(t, "Peter Parker", profile.Name)
		assert.Equal(t, "peter@kakao.com", profile.Email)
	})

	t.Run("missing nested profile leaves the name empty", func(t *testing.T) {
		profile, err := social.Normalize(social.ProviderKakao, payload(t, `{
			"id": 42,
			"kakao_account": {"email": "peter@kakao.com"}
		}`))

		require.NoError(t, err)
		assert.Equal(t, "42", profile.ProviderID)
		assert.Empty(t, profile.Name)
	})

	t.Run("missing kakao_account is a payload error", func(t *testing.T) {
		_, err := social.Normalize(social.ProviderKakao, payload(t, `{"id": 42}`))
		assert.Error(t, err)
	})
}

func TestNormalize_UnsupportedProvider(t *testing.T) {
	_, err := social.Normalize("github", map[string]any{"id": "1"})
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, 400, richErr.Code)
	assert.Equal(t, "UNSUPPORTED_PROVIDER", richErr.TextCode)
	assert.Equal(t, "github", richErr.Metadata["provider"])
}

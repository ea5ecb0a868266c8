package social

import (
	"encoding/json"
	"fmt"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// Provider names for the supported identity providers. Each one delivers
// its user-info payload with a different attribute nesting.
const (
	ProviderGoogle = "google"
	ProviderNaver  = "naver"
	ProviderKakao  = "kakao"
)

// ErrUnsupportedProvider is returned for provider names we don't know
var ErrUnsupportedProvider = goerrors.New("unsupported login provider", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("UNSUPPORTED_PROVIDER")

// Profile is the canonical record produced from a provider payload
type Profile struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"provider_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// Normalize converts a provider-specific user-info payload into a Profile.
// Google delivers flat top-level fields, Naver nests everything under
// "response", Kakao splits the account between "kakao_account" and its
// "profile" sub-object.
func Normalize(provider string, attributes map[string]any) (*Profile, error) {
	switch provider {
	case ProviderGoogle:
		return googleProfile(attributes)
	case ProviderNaver:
		return naverProfile(attributes)
	case ProviderKakao:
		return kakaoProfile(attributes)
	default:
		return nil, ErrUnsupportedProvider.Clone().
			WithMetadata(map[string]any{"provider": provider})
	}
}

func googleProfile(attrs map[string]any) (*Profile, error) {
	id, err := stringAttr(attrs, "sub")
	if err != nil {
		return nil, providerPayloadError(ProviderGoogle, err)
	}

	name, _ := stringAttr(attrs, "name")
	email, _ := stringAttr(attrs, "email")

	return &Profile{
		Provider:   ProviderGoogle,
		ProviderID: id,
		Name:       name,
		Email:      email,
	}, nil
}

func naverProfile(attrs map[string]any) (*Profile, error) {
	response, err := mapAttr(attrs, "response")
	if err != nil {
		return nil, providerPayloadError(ProviderNaver, err)
	}

	id, err := stringAttr(response, "id")
	if err != nil {
		return nil, providerPayloadError(ProviderNaver, err)
	}

	name, _ := stringAttr(response, "name")
	email, _ := stringAttr(response, "email")

	return &Profile{
		Provider:   ProviderNaver,
		ProviderID: id,
		Name:       name,
		Email:      email,
	}, nil
}

func kakaoProfile(attrs map[string]any) (*Profile, error) {
	id, err := stringAttr(attrs, "id")
	if err != nil {
		return nil, providerPayloadError(ProviderKakao, err)
	}

	account, err := mapAttr(attrs, "kakao_account")
	if err != nil {
		return nil, providerPayloadError(ProviderKakao, err)
	}

	email, _ := stringAttr(account, "email")

	var name string
	if profile, err := mapAttr(account, "profile"); err == nil {
		name, _ = stringAttr(profile, "nickname")
	}

	return &Profile{
		Provider:   ProviderKakao,
		ProviderID: id,
		Name:       name,
		Email:      email,
	}, nil
}

func stringAttr(attrs map[string]any, key string) (string, error) {
	raw, ok := attrs[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing attribute %q", key)
	}

	// kakao delivers numeric ids
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return fmt.Sprint(raw), nil
	}
}

func mapAttr(attrs map[string]any, key string) (map[string]any, error) {
	raw, ok := attrs[key]
	if !ok {
		return nil, fmt.Errorf("missing attribute %q", key)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("attribute %q has unexpected shape", key)
	}

	return m, nil
}

func providerPayloadError(provider string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid provider payload").
		WithCode(goerrors.CodeBadRequest).
		WithTextCode("BAD_PROVIDER_PAYLOAD").
		WithMetadata(map[string]any{"provider": provider})
}

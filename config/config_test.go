package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nshopping-manager/models"
)

func TestParseKeywords(t *testing.T) {
	got := ParseKeywords("DJI 드론, 매빅3\n에어3,,\n  \n미니4 프로 ")
	assert.Equal(t, []string{"DJI 드론", "매빅3", "에어3", "미니4 프로"}, got)
	assert.Empty(t, ParseKeywords(" , \n"))
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"드론박스", "DroneBox", "DRONEBOX", "DJI 정품판매점 드론박스"}, ParseList(DefaultOwnBrand1))
	assert.Nil(t, ParseList(""))
}

func TestParseRules(t *testing.T) {
	rules := ParseRules(" 드론박스 = 드론박스 | DroneBox ; broken ; =x; 빈규칙= | ;효로로=효로로")
	assert.Equal(t, []models.CanonicalRule{
		{Label: "드론박스", Tokens: []string{"드론박스", "DroneBox"}},
		{Label: "효로로", Tokens: []string{"효로로"}},
	}, rules)

	defaults := ParseRules(DefaultCanonicalRules)
	require.Len(t, defaults, 5)
	assert.Equal(t, "드론박스", defaults[0].Label)
	assert.Equal(t, "드론뷰", defaults[4].Label)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NAVER_CLIENT_ID", "cid")
	t.Setenv("NAVER_CLIENT_SECRET", "sec")
	t.Setenv("DEFAULT_KEYWORDS", "a,b\nc")
	t.Setenv("COMPETITORS", "x, y")
	t.Setenv("ALWAYS_RECORD", "false")
	t.Setenv("PAUSE_MIN_MS", "500")
	t.Setenv("PAUSE_MAX_MS", "1200")
	t.Setenv("REQUEST_TIMEOUT_MS", "not-a-number")
	t.Setenv("MY_BRAND_1", "")

	cfg := Load()
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Keywords)
	assert.Equal(t, []string{"x", "y"}, cfg.Competitors)
	assert.Equal(t, ParseList(DefaultOwnBrand1), cfg.OwnBrand1)
	assert.False(t, cfg.AlwaysRecord)
	assert.Equal(t, 500, cfg.PauseMinMs)
	assert.Equal(t, 1200, cfg.PauseMaxMs)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoKeywords))
	assert.True(t, errors.Is(err, ErrMissingCredentials))
	assert.Contains(t, err.Error(), "NAVER_CLIENT_ID")
	assert.Contains(t, err.Error(), "NAVER_CLIENT_SECRET")

	cfg = &Config{Keywords: []string{"kw"}, NaverClientID: "id"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoKeywords))
	assert.Contains(t, err.Error(), "NAVER_CLIENT_SECRET")
}

func TestAdCredentialsSet(t *testing.T) {
	assert.False(t, (&Config{AdAPIKey: "k", AdSecretKey: "s"}).AdCredentialsSet())
	assert.True(t, (&Config{AdAPIKey: "k", AdSecretKey: "s", AdCustomerID: "c"}).AdCredentialsSet())
}

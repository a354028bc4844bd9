package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []passwordRule
	}{
		{name: "strong", password: "Aa1!aaaa", want: nil},
		{name: "strong with space as symbol", password: "Aa1 aaaa", want: nil},
		{name: "too short", password: "Aa1!aaa", want: []passwordRule{ruleMinLength}},
		{name: "no uppercase", password: "aa1!aaaa", want: []passwordRule{ruleUppercase}},
		{name: "no lowercase", password: "AA1!AAAA", want: []passwordRule{ruleLowercase}},
		{name: "no digit", password: "Aab!aaaa", want: []passwordRule{ruleDigit}},
		{name: "no symbol", password: "Aa1aaaaa", want: []passwordRule{ruleSymbol}},
		{
			name:     "empty violates everything",
			password: "",
			want:     []passwordRule{ruleMinLength, ruleUppercase, ruleLowercase, ruleDigit, ruleSymbol},
		},
		{
			name:     "non-ascii letters digits and symbols do not count",
			password: "ÀÀàà11€€",
			want:     []passwordRule{ruleUppercase, ruleLowercase, ruleSymbol},
		},
		{name: "length counts runes", password: "Aa1!éééé", want: nil},
		{name: "exactly bcrypt limit", password: "Aa1!" + strings.Repeat("x", 68), want: nil},
		{name: "over bcrypt limit", password: "Aa1!" + strings.Repeat("x", 80), want: []passwordRule{ruleMaxBytes}},
		{name: "limit counts bytes", password: "Aa1!" + strings.Repeat("é", 35), want: []passwordRule{ruleMaxBytes}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkPasswordStrength(tt.password))
			assert.Equal(t, len(tt.want) == 0, IsStrongPassword(tt.password))
		})
	}
}

func TestStrongPasswordsAlwaysHash(t *testing.T) {
	for _, pw := range []string{"Aa1!aaaa", "Aa1!" + strings.Repeat("x", 68), "Zz9#" + strings.Repeat("é", 34)} {
		require.True(t, IsStrongPassword(pw), pw)
		_, err := HashPassword(pw, bcrypt.MinCost)
		require.NoError(t, err, "len=%d", len(pw))
	}
}

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	h1, err := HashPassword("Aa1!aaaa", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("Aa1!aaaa", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "per-password salt must differ")
	assert.NotContains(t, h1, "Aa1!aaaa")

	ok, err := CheckPassword(h1, "Aa1!aaaa")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(h1, "Aa1!aaab")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword("Aa1!"+strings.Repeat("x", 80), bcrypt.MinCost)
	require.Error(t, err)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	_, err := CheckPassword("not-a-bcrypt-hash", "whatever")
	require.Error(t, err)
}

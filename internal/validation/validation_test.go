package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abc", false},               // too short, no upper, no digit
		{"kLmN0PzzZ", true},          // len>=8, upper, digit
		{"alllowercase1", false},     // no upper
		{"ALLUPPERCASE1", true},      // upper + digit
		{"NoDigitsHere", false},      // no digit
		{"Ab1defgh", true},           // exactly 8
		{"Ab1defg", false},           // 7 chars
		{"Пароль0Х", true},           // cyrillic upper counts, 8 runes
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPassword(tt.password))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("nick@gmail.com"))
	assert.False(t, ValidEmail("sldhkasjd"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("@gmail.com"))
}

func TestErrors_Aggregation(t *testing.T) {
	errs := Errors{}
	assert.True(t, errs.Empty())

	errs.Add("email", MsgEmailInvalid)
	errs.Add("email", MsgEmailTaken)
	errs.Add("password", MsgPasswordPolicy)

	assert.False(t, errs.Empty())
	assert.Equal(t, []string{MsgEmailInvalid, MsgEmailTaken}, errs["email"])
	assert.Equal(t, []string{MsgPasswordPolicy}, errs["password"])
}

func TestErrors_ErrorStringIsStable(t *testing.T) {
	errs := Errors{}
	errs.Add("password", MsgPasswordMismatch)
	errs.Add("email", MsgEmailTaken)

	// Fields are sorted so the message does not depend on map order.
	assert.Equal(t, "email: "+MsgEmailTaken+"; password: "+MsgPasswordMismatch, errs.Error())
}

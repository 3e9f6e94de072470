package request

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
)

type sampleBody struct {
	Name     string `json:"name,omitempty" validate:"required"`
	Currency string `json:"currency,omitempty" validate:"required,iso4217"`
	Other    string `json:"other,omitempty"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(sampleBody{Name: "x", Currency: "USD"}))
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(sampleBody{}, "user_id")

	apiErr := err.(*apierror.Error)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, apierror.MsgMissingFields, apiErr.Message)
	assert.Equal(t, "user_id, name, currency", apiErr.Details)
}

func TestValidate_Invalid(t *testing.T) {
	err := Validate(sampleBody{Name: "x", Currency: "DOLLARS"})

	apiErr := err.(*apierror.Error)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, apierror.MsgInvalidRequest, apiErr.Message)
	assert.Contains(t, apiErr.Details, "currency")
}

func TestMissingUserID(t *testing.T) {
	assert.Equal(t, []string{"user_id"}, MissingUserID(auth.BindClient, ""))
	assert.Nil(t, MissingUserID(auth.BindClient, "u1"))
	assert.Nil(t, MissingUserID(auth.BindPrincipal, ""))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-02-29T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.UTC().Hour())

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestDecimal_UnmarshalJSON(t *testing.T) {
	var body struct {
		A Decimal `json:"a"`
		B Decimal `json:"b"`
		C Decimal `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12.50","b":30,"c":null}`), &body))

	a, err := body.A.Parse()
	require.NoError(t, err)
	assert.Equal(t, "12.5", a.String())

	b, err := body.B.Parse()
	require.NoError(t, err)
	assert.Equal(t, "30", b.String())

	assert.Equal(t, Decimal(""), body.C)
}

func TestDecimal_ParseMoneyScale(t *testing.T) {
	for _, ok := range []string{"0.0001", "1.2345", "1.23450000", "-99.5", "999999999999999.9999"} {
		_, err := Decimal(ok).Parse()
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"0.00005", "1.23456", "0.00001", "1000000000000000"} {
		_, err := Decimal(bad).Parse()
		assert.Error(t, err, bad)
	}
}

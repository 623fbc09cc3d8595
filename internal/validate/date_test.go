package validate_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := validate.DateOf(time.Date(1990, 4, 2, 18, 30, 0, 0, time.UTC))

	b, err := json.Marshal(struct {
		DOB *validate.Date `json:"dob"`
		Nil *validate.Date `json:"nil"`
	}{DOB: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dob":"1990-04-02","nil":null}`, string(b))

	var back validate.Date
	require.NoError(t, json.Unmarshal([]byte(`"2001-12-31"`), &back))
	assert.Equal(t, 2001, back.Year())
}

func TestDateScan(t *testing.T) {
	var d validate.Date
	require.NoError(t, d.Scan(time.Date(2020, 1, 5, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2020-01-05", d.Format(validate.DateLayout))

	require.NoError(t, d.Scan([]byte("2021-06-07")))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2021-06-07", v)

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	assert.Nil(t, validate.DateValue(validate.Nullable[time.Time]{Set: true}))

	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	got := validate.DateValue(validate.Nullable[time.Time]{Set: true, Val: &now})
	require.NotNil(t, got)
	assert.Equal(t, "2026-10-15", got.Format(validate.DateLayout))
}

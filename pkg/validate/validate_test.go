package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fipsref/pkg/dataset"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/normalize"
	"github.com/agentstation/fipsref/pkg/registry"
)

var known = map[string]struct{}{
	"0101852": {},
	"4805000": {},
	"0644000": {},
	"7276770": {},
}

func parse(t *testing.T, src string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(src), "ratings.csv")
	require.NoError(t, err)
	return ds
}

func newValidator() *Validator {
	return &Validator{Registry: registry.New(), Known: known}
}

func TestValidate(t *testing.T) {
	ds := parse(t, "city,state,country,census_fips_code\n"+
		"Austin,TX,UNITED STATES,4805000\n"+
		"Alexander City,AL,UNITED STATES,101852\n"+
		"Los Angeles,TX,United States,0644000\n"+
		"Nowhere,XX,UNITED STATES,4899999\n"+
		"Toronto,ON,CANADA,\n"+
		"San Juan,PR,united states,7276770\n")

	report, err := newValidator().Validate(ds, "UNITED STATES")
	require.NoError(t, err)

	assert.Equal(t, 5, report.Total, "country match folds case and skips other countries")
	require.Len(t, report.Errors, 3)
	assert.Equal(t, 3, report.Problems)
	assert.True(t, report.Failed())

	assert.Equal(t, RowError{
		Line: 3, City: "Alexander City", State: "AL", Code: "101852",
		LengthOK: false, PrefixOK: false, KnownPlace: false,
	}, report.Errors[0])

	assert.Equal(t, RowError{
		Line: 4, City: "Los Angeles", State: "TX", Code: "0644000",
		LengthOK: true, PrefixOK: false, KnownPlace: true,
	}, report.Errors[1])

	assert.Equal(t, RowError{
		Line: 5, City: "Nowhere", State: "XX", Code: "4899999",
		LengthOK: true, PrefixOK: false, KnownPlace: false,
	}, report.Errors[2], "unknown state never passes the prefix check")

	var failed *errors.ValidationFailedError
	require.ErrorAs(t, report.Err(), &failed)
	assert.Equal(t, 3, failed.Problems)
	assert.Equal(t, 5, failed.Total)
}

func TestValidate_AfterFix(t *testing.T) {
	ds := parse(t, "city,state,country,census_fips_code\n"+
		"Alexander City,AL,UNITED STATES,101852\n")
	v := newValidator()

	before, err := v.Validate(ds, "UNITED STATES")
	require.NoError(t, err)
	require.Len(t, before.Errors, 1)
	assert.False(t, before.Errors[0].LengthOK)

	changes, err := normalize.Fix(ds, "UNITED STATES", "census_fips_code")
	require.NoError(t, err)
	require.Len(t, changes, 1)

	after, err := v.Validate(ds, "UNITED STATES")
	require.NoError(t, err)
	assert.False(t, after.Failed())
	assert.NoError(t, after.Err())
}

func TestValidate_NonNumericCode(t *testing.T) {
	ds := parse(t, "city,state,country,census_fips_code\n"+
		"Austin,TX,UNITED STATES,48A5000\n"+
		"Nan,TX,UNITED STATES,nan\n"+
		"Blank,TX,UNITED STATES,\n")

	report, err := newValidator().Validate(ds, "UNITED STATES")
	require.NoError(t, err)
	require.Len(t, report.Errors, 3)
	for _, re := range report.Errors {
		assert.False(t, re.LengthOK, re.Code)
		assert.False(t, re.KnownPlace, re.Code)
	}
	assert.True(t, report.Errors[0].PrefixOK, "prefix check is independent of length")
}

func TestValidate_CustomColumn(t *testing.T) {
	ds := parse(t, "city,state,country,place_code\nAustin,TX,UNITED STATES,4805000\n")

	v := newValidator()
	v.Column = "place_code"

	report, err := v.Validate(ds, "UNITED STATES")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.False(t, report.Failed())
}

func TestValidate_MissingColumns(t *testing.T) {
	ds := parse(t, "city,country\nAustin,UNITED STATES\n")

	_, err := newValidator().Validate(ds, "UNITED STATES")
	require.Error(t, err)
	assert.True(t, errors.IsMissingColumns(err))
	assert.Contains(t, err.Error(), "census_fips_code")
	assert.Contains(t, err.Error(), "state")
}

func TestValidate_NoMatchingRows(t *testing.T) {
	ds := parse(t, "city,state,country,census_fips_code\nToronto,ON,CANADA,\n")

	report, err := newValidator().Validate(ds, "UNITED STATES")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Errors)
	assert.NoError(t, report.Err())
}

func TestValidate_LineNumbersFollowMultilineCells(t *testing.T) {
	ds := parse(t, "city,state,country,census_fips_code,notes\n"+
		"Austin,TX,UNITED STATES,4805000,\"first\nsecond\nthird\"\n"+
		"Nowhere,TX,UNITED STATES,4899999,\n")

	report, err := newValidator().Validate(ds, "UNITED STATES")
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, 5, report.Errors[0].Line)
}

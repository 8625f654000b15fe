package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fipsref/pkg/registry"
	"github.com/agentstation/fipsref/pkg/validate"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("wide")
	assert.Error(t, err)
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "32,333", Count(32333))
	assert.Equal(t, "1,234,567", Count(1234567))
}

func TestTableFormatter_States(t *testing.T) {
	var buf bytes.Buffer
	data := StatesToData([]registry.StateCode{{Prefix: "48", Abbr: "TX", Name: "Texas"}})

	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "texas")
	assert.Contains(t, out, "48")
}

func TestTableFormatter_StructSlice(t *testing.T) {
	var buf bytes.Buffer
	errs := []validate.RowError{{Line: 2, City: "Austin", State: "TX", Code: "480500"}}

	require.NoError(t, NewFormatter(FormatTable).Format(&buf, errs))
	assert.Contains(t, buf.String(), "Austin")
}

func TestRowErrorsToData(t *testing.T) {
	data := RowErrorsToData([]validate.RowError{
		{City: "Alexander City", State: "AL", Code: "101852", PrefixOK: false, KnownPlace: true},
	}, "place_code")

	assert.Equal(t, []string{"city", "state", "place_code", "valid_len", "state_prefix_ok", "place_known"}, data.Headers)
	assert.Equal(t, [][]string{{"Alexander City", "AL", "101852", "false", "false", "true"}}, data.Rows)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, registry.StateCode{Prefix: "06", Abbr: "CA", Name: "California"}))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "06", got["state_fips"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, []registry.StateCode{{Prefix: "06", Abbr: "CA", Name: "California"}}))
	assert.Contains(t, buf.String(), "state_fips:")
	assert.Contains(t, buf.String(), "California")
}

package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fipsref/internal/gazetteer"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/registry"
)

type staticStates []registry.StateCode

func (s staticStates) States() []registry.StateCode { return s }

var (
	california = registry.StateCode{Prefix: "06", Abbr: "CA", Name: "California"}
	texas      = registry.StateCode{Prefix: "48", Abbr: "TX", Name: "Texas"}
)

// gazetteerServer serves place files keyed by state prefix and lets tests
// swap their content between builds.
type gazetteerServer struct {
	mu    sync.Mutex
	files map[string]string
	*httptest.Server
}

func newGazetteerServer(t *testing.T, files map[string]string) *gazetteerServer {
	t.Helper()
	gs := &gazetteerServer{files: files}
	gs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gs.mu.Lock()
		defer gs.mu.Unlock()
		for prefix, body := range gs.files {
			if strings.HasSuffix(r.URL.Path, "_gaz_place_"+prefix+".txt") {
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(gs.Close)
	return gs
}

func (gs *gazetteerServer) set(prefix, body string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.files[prefix] = body
}

func newBuilder(t *testing.T, gs *gazetteerServer, states StateSource, opts Options) *Builder {
	t.Helper()
	client := gazetteer.NewClient(filepath.Join(t.TempDir(), "cache"))
	client.BaseURL = gs.URL
	return NewBuilder(states, client, opts)
}

func TestBuild(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"06": "USPS\tGEOID\tNAME\nCA\t0644000\tLos Angeles city\nCA\t0667000\tSan Francisco city\n",
		"48": "USPS\tGEOID\tNAME\nTX\t4835000\tHouston city\nTX\t4805000\tAustin city\nTX\t48050\tBroken\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")

	b := newBuilder(t, gs, staticStates{california, texas}, Options{Year: 2024, Out: out})
	result, err := b.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Entries, 4)
	var ids []string
	for _, e := range result.Entries {
		ids = append(ids, e.GeoID)
	}
	assert.Equal(t, []string{"0644000", "0667000", "4805000", "4835000"}, ids)
	assert.Equal(t, Entry{GeoID: "4805000", PlaceName: "Austin city", StateAbbr: "TX", StateName: "Texas"}, result.Entries[2])

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "geo_id,place_name,state_abbr,state_name", lines[0])
	assert.Len(t, lines, 5)

	assert.Equal(t, strings.TrimSuffix(out, ".csv")+".manifest.json", result.ManifestPath)
	m, err := ReadManifest(result.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, Source{Type: "census_gazetteer_places", Year: 2024}, m.Source)
	assert.Equal(t, 4, m.Output.RowCount)
	assert.Equal(t, out, m.Output.Path)
	require.Len(t, m.Inputs, 2)
	assert.Contains(t, m.Inputs[0].URL, "2024_gaz_place_06.txt")
	assert.Contains(t, m.Inputs[1].URL, "2024_gaz_place_48.txt")

	hash, err := SHA256File(out)
	require.NoError(t, err)
	assert.Equal(t, hash, m.Output.SHA256)
	assert.False(t, result.Changed)
}

func TestBuild_ManifestKeysSorted(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"48": "USPS\tGEOID\tNAME\nTX\t4805000\tAustin city\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")

	_, err := newBuilder(t, gs, staticStates{texas}, Options{Year: 2024, Out: out}).Build(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(ManifestPath(out))
	require.NoError(t, err)

	text := string(data)
	assert.Less(t, strings.Index(text, `"inputs"`), strings.Index(text, `"output"`))
	assert.Less(t, strings.Index(text, `"output"`), strings.Index(text, `"source"`))
	assert.Less(t, strings.Index(text, `"path"`), strings.Index(text, `"sha256"`))
	assert.Less(t, strings.Index(text, `"sha256"`), strings.Index(text, `"url"`))
	assert.Less(t, strings.Index(text, `"type"`), strings.Index(text, `"year"`))

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
}

func TestBuild_DedupesKeepingFirst(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"06": "USPS\tGEOID\tNAME\nCA\t0644000\tLos Angeles city\n",
		"48": "USPS\tGEOID\tNAME\nTX\t0644000\tImpostor\nTX\t4805000\tAustin city\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")

	result, err := newBuilder(t, gs, staticStates{california, texas}, Options{Out: out}).Build(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Los Angeles city", result.Entries[0].PlaceName)
}

func TestBuild_UnknownAbbreviationKeepsEmptyName(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"48": "USPS\tGEOID\tNAME\nZZ\t4805000\tNowhere\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")

	result, err := newBuilder(t, gs, staticStates{texas}, Options{Out: out}).Build(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "", result.Entries[0].StateName)
}

func TestBuild_CommitGuard(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"48": "USPS\tGEOID\tNAME\nTX\t4805000\tAustin city\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")
	opts := Options{Year: 2024, Out: out, CommitGuard: true}

	first, err := newBuilder(t, gs, staticStates{texas}, opts).Build(context.Background())
	require.NoError(t, err, "no pre-existing file means nothing to guard")
	assert.Empty(t, first.PreviousHash)

	second, err := newBuilder(t, gs, staticStates{texas}, opts).Build(context.Background())
	require.NoError(t, err, "identical inputs produce an identical table")
	assert.Equal(t, first.Manifest.Output.SHA256, second.Manifest.Output.SHA256)
	assert.False(t, second.Changed)

	gs.set("48", "USPS\tGEOID\tNAME\nTX\t4805000\tAustin city\nTX\t4835000\tHouston city\n")

	third, err := newBuilder(t, gs, staticStates{texas}, opts).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsDrift(err))
	require.NotNil(t, third)
	assert.True(t, third.Changed)

	var drift *errors.DriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, second.Manifest.Output.SHA256, drift.OldHash)
	assert.Equal(t, third.Manifest.Output.SHA256, drift.NewHash)

	keys, err := ReadKeys(out)
	require.NoError(t, err)
	assert.Contains(t, keys, "4835000", "the new table is written even when drift is reported")
}

func TestBuild_WithoutGuardIgnoresDrift(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"48": "USPS\tGEOID\tNAME\nTX\t4805000\tAustin city\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")
	require.NoError(t, os.WriteFile(out, []byte("geo_id\n0000000\n"), 0o644))

	result, err := newBuilder(t, gs, staticStates{texas}, Options{Out: out}).Build(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestBuild_DuplicateRegistryAbbreviation(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"48": "USPS\tGEOID\tNAME\nTX\t4805000\tAustin city\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")
	states := staticStates{texas, {Prefix: "49", Abbr: "TX", Name: "Not Texas"}}

	_, err := newBuilder(t, gs, states, Options{Out: out}).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsIntegrity(err))
	assert.NoFileExists(t, out)
}

func TestBuild_MissingColumnsWritesNothing(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"06": "USPS\tGEOID\tNAME\nCA\t0644000\tLos Angeles city\n",
		"48": "USPS\tNAME\nTX\tAustin city\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")

	_, err := newBuilder(t, gs, staticStates{california, texas}, Options{Out: out}).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsMissingColumns(err))
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, ManifestPath(out))
}

func TestBuild_FetchFailureWritesNothing(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{
		"06": "USPS\tGEOID\tNAME\nCA\t0644000\tLos Angeles city\n",
	})
	out := filepath.Join(t.TempDir(), "lookup.csv")

	_, err := newBuilder(t, gs, staticStates{california, texas}, Options{Out: out}).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
	assert.NoFileExists(t, out)
}

func TestBuild_Canceled(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{})
	out := filepath.Join(t.TempDir(), "lookup.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newBuilder(t, gs, staticStates{texas}, Options{Out: out}).Build(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, out)
}

func TestBuild_WithRegistry(t *testing.T) {
	gs := newGazetteerServer(t, map[string]string{})
	for _, s := range registry.New().States() {
		gs.set(s.Prefix, "USPS\tGEOID\tNAME\n"+s.Abbr+"\t"+s.Prefix+"00100\tFirst place\n")
	}
	out := filepath.Join(t.TempDir(), "lookup.csv")

	result, err := newBuilder(t, gs, registry.New(), Options{Out: out}).Build(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Entries, 51)
	assert.Equal(t, "District of Columbia", result.Entries[8].StateName)
}

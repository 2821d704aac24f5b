//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/musicmodel/cmd"
	"github.com/jsphweid/musicmodel/midi"
	"github.com/jsphweid/musicmodel/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var server *httptest.Server

func TestMain(m *testing.M) {
	server = httptest.NewServer(cmd.NewHandler([]string{"*"}))
	exitVal := m.Run()
	server.Close()
	os.Exit(exitVal)
}

func postLengths(t *testing.T, body model.LengthsRequestBody) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+"/lengths", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestTiesAcrossMeasuresE2E(t *testing.T) {
	resp, body := postLengths(t, model.LengthsRequestBody{Rhythms: []string{
		"1/1 {1:c4 1:d4 1:e4 1:f4}",
		"1/1 {1:~ 1:r 2{1:g4 1:~}}",
	}})

	assert := assert.New(t)
	assert.Equal(http.StatusOK, resp.StatusCode)

	var res model.LengthsResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal([]string{"1/4", "1/4", "1/4", "1/2", "1/4", "1/2"}, res.Lengths)
}

func TestStrictRejectsDanglingTieE2E(t *testing.T) {
	resp, _ := postLengths(t, model.LengthsRequestBody{Rhythms: []string{"1/2 {1:r 1:~}"}, Strict: true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportMatchesLengthsE2E(t *testing.T) {
	src := "1/1 {1:c4 1:~ 1:r 1:e4} 1/2 {1:~ 1:g4}"
	spans, err := cmd.Spans(src, false)
	require.NoError(t, err)

	s, err := midi.ExportPitches(spans, midi.DefaultOptions())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "e2e.mid")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = s.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	read, err := midi.ReadMidiFile(path)
	require.NoError(t, err)
	notes, err := midi.NoteLengths(read)
	require.NoError(t, err)

	var sounding []string
	for _, span := range spans {
		if _, ok := span.Instance.Value(); ok {
			sounding = append(sounding, span.Duration.String())
		}
	}
	require.Len(t, notes, len(sounding))
	for i, n := range notes {
		assert.Equal(t, sounding[i], n.Duration.String())
	}
}

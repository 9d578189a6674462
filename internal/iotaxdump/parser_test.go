package iotaxdump

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/errcode"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	known map[string]struct{}
}

func (m *mockStore) KnownTaxIDs(
	_ context.Context,
) (map[string]struct{}, error) {
	return m.known, nil
}

func (m *mockStore) AccessionExists(
	_ context.Context, _ string,
) (bool, error) {
	return false, nil
}

func newMockStore(taxIDs ...string) *mockStore {
	known := make(map[string]struct{})
	for _, id := range taxIDs {
		known[id] = struct{}{}
	}
	return &mockStore{known: known}
}

func writeDump(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig() *config.Config {
	cfg := config.New()
	// Canonical extraction is exercised separately.
	off := false
	cfg.Update([]config.Option{config.OptImportWithCanonical(&off)})
	return cfg
}

func nodesLines() []string {
	return []string{
		"9606\t|\t9605\t|\tspecies\t|",
		"9605\t|\t9604\t|\tgenus\t|",
	}
}

func namesLines() []string {
	return []string{
		"9606\t|\tHomo sapiens\t|\t\t|\tscientific name\t|",
		"9606\t|\thuman\t|\t\t|\tgenbank common name\t|",
		"9605\t|\tHomo\t|\t\t|\tscientific name\t|",
	}
}

func TestParse_MergesNodesAndNames(t *testing.T) {
	nodes := writeDump(t, "nodes.dmp", nodesLines()...)
	names := writeDump(t, "names.dmp", namesLines()...)
	p := New(testConfig(), newMockStore())

	res, err := p.Parse(context.Background(), nodes, names)
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "9606", res[0].TaxID)
	assert.Equal(t, "9605", res[0].ParentTaxID)
	assert.Equal(t, "species", res[0].Rank)
	assert.Equal(t, "Homo sapiens", res[0].Name)
	assert.NotEmpty(t, res[0].NameID)

	assert.Equal(t, "9605", res[1].TaxID)
	assert.Equal(t, "9604", res[1].ParentTaxID)
	assert.Equal(t, "genus", res[1].Rank)
	assert.Equal(t, "Homo", res[1].Name)
}

func TestParse_FiltersKnownTaxIDs(t *testing.T) {
	nodes := writeDump(t, "nodes.dmp", nodesLines()...)
	names := writeDump(t, "names.dmp", namesLines()...)
	p := New(testConfig(), newMockStore("9606"))

	res, err := p.Parse(context.Background(), nodes, names)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "9605", res[0].TaxID)
}

func TestParse_DropsNodesWithoutScientificName(t *testing.T) {
	nodes := writeDump(t, "nodes.dmp",
		"9606\t|\t9605\t|\tspecies\t|",
		"12908\t|\t1\t|\tno rank\t|",
	)
	// 12908 has no scientific-name row, 555 has no node row.
	names := writeDump(t, "names.dmp",
		"9606\t|\tHomo sapiens\t|\t\t|\tscientific name\t|",
		"555\t|\tOrphanus namius\t|\t\t|\tscientific name\t|",
	)
	p := New(testConfig(), newMockStore())

	res, err := p.Parse(context.Background(), nodes, names)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "9606", res[0].TaxID)
}

func TestParse_Idempotent(t *testing.T) {
	nodes := writeDump(t, "nodes.dmp", nodesLines()...)
	names := writeDump(t, "names.dmp", namesLines()...)
	p := New(testConfig(), newMockStore())

	first, err := p.Parse(context.Background(), nodes, names)
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), nodes, names)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_MalformedNodesLine(t *testing.T) {
	nodes := writeDump(t, "nodes.dmp",
		"9606\t|\t9605\t|\tspecies\t|",
		"9605-no-pipes",
	)
	names := writeDump(t, "names.dmp", namesLines()...)
	p := New(testConfig(), newMockStore())

	_, err := p.Parse(context.Background(), nodes, names)
	require.Error(t, err)

	var gerr *gn.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, errcode.ParseMalformedRecordError, gerr.Code)
}

func TestParse_NoPathsConfigured(t *testing.T) {
	p := New(testConfig(), newMockStore())

	_, err := p.Parse(context.Background(), "", "")
	require.Error(t, err)

	var gerr *gn.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, errcode.PathNotSetError, gerr.Code)
}

func TestSetters(t *testing.T) {
	nodes := writeDump(t, "nodes.dmp", nodesLines()...)
	names := writeDump(t, "names.dmp", namesLines()...)
	p := New(testConfig(), newMockStore())

	require.Error(t, p.SetNodesFile(""))
	require.Error(t, p.SetNamesFile(filepath.Join(t.TempDir(), "x")))

	require.NoError(t, p.SetNodesFile(nodes))
	require.NoError(t, p.SetNamesFile(names))

	res, err := p.Parse(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestParse_WithCanonical(t *testing.T) {
	nodes := writeDump(t, "nodes.dmp",
		"9606\t|\t9605\t|\tspecies\t|")
	names := writeDump(t, "names.dmp",
		"9606\t|\tHomo sapiens Linnaeus, 1758\t|\t\t|\tscientific name\t|")

	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(2)})
	p := New(cfg, newMockStore())

	res, err := p.Parse(context.Background(), nodes, names)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Homo sapiens Linnaeus, 1758", res[0].Name)
	assert.Equal(t, "Homo sapiens", res[0].Canonical)

	var zero taxdb.TaxonNode
	assert.NotEqual(t, zero.NameID, res[0].NameID)
}

package iopopulate

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memOperator is an in-memory db.Operator double.
type memOperator struct {
	taxa       map[string]taxdb.TaxonNode
	accessions map[string]string
	runs       []taxdb.ImportRun
	batches    []int
}

func newMemOperator() *memOperator {
	return &memOperator{
		taxa:       map[string]taxdb.TaxonNode{},
		accessions: map[string]string{},
	}
}

func (m *memOperator) Connect(
	_ context.Context, _ *config.DatabaseConfig,
) error {
	return nil
}
func (m *memOperator) Close() error             { return nil }
func (m *memOperator) Pool() *pgxpool.Pool      { return nil }
func (m *memOperator) Exec(_ context.Context, _ string) error {
	return nil
}
func (m *memOperator) HasTables(_ context.Context) (bool, error) {
	return true, nil
}
func (m *memOperator) DropAllTables(_ context.Context) error {
	return nil
}

func (m *memOperator) KnownTaxIDs(
	_ context.Context,
) (map[string]struct{}, error) {
	res := make(map[string]struct{})
	for id := range m.taxa {
		res[id] = struct{}{}
	}
	return res, nil
}

func (m *memOperator) AccessionExists(
	_ context.Context, acc string,
) (bool, error) {
	_, ok := m.accessions[acc]
	return ok, nil
}

func (m *memOperator) InsertTaxa(
	_ context.Context, taxa []taxdb.TaxonNode,
) (int64, error) {
	var n int64
	for _, t := range taxa {
		if _, ok := m.taxa[t.TaxID]; ok {
			continue
		}
		m.taxa[t.TaxID] = t
		n++
	}
	return n, nil
}

func (m *memOperator) InsertAccessions(
	_ context.Context, recs []taxdb.AccessionRecord,
) (int64, error) {
	m.batches = append(m.batches, len(recs))
	var n int64
	for _, rec := range recs {
		if _, ok := m.accessions[rec.Accession]; ok {
			continue
		}
		m.accessions[rec.Accession] = rec.TaxID
		n++
	}
	return n, nil
}

func (m *memOperator) InsertImportRun(
	_ context.Context, run taxdb.ImportRun,
) error {
	m.runs = append(m.runs, run)
	return nil
}

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeGzFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	nodes := writeFile(t, dir, "nodes.dmp",
		"9606\t|\t9605\t|\tspecies\t|",
		"9605\t|\t9604\t|\tgenus\t|",
	)
	names := writeFile(t, dir, "names.dmp",
		"9606\t|\tHomo sapiens\t|\t\t|\tscientific name\t|",
		"9605\t|\tHomo\t|\t\t|\tscientific name\t|",
	)
	acc := writeGzFile(t, dir, "nucl.accession2taxid.gz",
		"accession\taccession.version\ttaxid",
		"A1\tA1.1\t9606",
		"A2\tA2.1\t9605",
		"A3\tA3.1\t555",
	)

	cfg := config.New()
	off := false
	cfg.Update([]config.Option{
		config.OptImportNodesFile(nodes),
		config.OptImportNamesFile(names),
		config.OptImportAccessionFiles([]string{acc}),
		config.OptImportChunkSize(1),
		config.OptImportWithCanonical(&off),
		config.OptImportSkipVerify(true),
	})
	return cfg
}

func TestPopulateTaxa(t *testing.T) {
	cfg := testConfig(t)
	op := newMemOperator()
	pop := New(cfg, op)

	require.NoError(t, pop.PopulateTaxa(context.Background()))

	assert.Len(t, op.taxa, 2)
	assert.Equal(t, "Homo sapiens", op.taxa["9606"].Name)
	assert.Equal(t, "genus", op.taxa["9605"].Rank)

	require.Len(t, op.runs, 1)
	assert.Equal(t, "taxa", op.runs[0].Kind)
	assert.Equal(t, int64(2), op.runs[0].RecordCount)

	// Second run against the populated store inserts nothing.
	require.NoError(t, pop.PopulateTaxa(context.Background()))
	assert.Len(t, op.taxa, 2)
	assert.Equal(t, int64(0), op.runs[1].RecordCount)
}

func TestPopulateAccessions(t *testing.T) {
	cfg := testConfig(t)
	op := newMemOperator()
	pop := New(cfg, op)

	// Accessions need the taxa first; A3's taxid stays unknown.
	require.NoError(t, pop.PopulateTaxa(context.Background()))
	require.NoError(t, pop.PopulateAccessions(context.Background()))

	assert.Len(t, op.accessions, 2)
	assert.Equal(t, "9606", op.accessions["A1"])
	assert.Equal(t, "9605", op.accessions["A2"])
	assert.NotContains(t, op.accessions, "A3")

	// chunk size 1 produces one batch per eligible row
	assert.Equal(t, []int{1, 1}, op.batches)

	require.Len(t, op.runs, 2)
	assert.Equal(t, "accessions", op.runs[1].Kind)
}

func TestPopulateAccessions_NoFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Import.AccessionFiles = nil
	pop := New(cfg, newMemOperator())

	err := pop.PopulateAccessions(context.Background())
	require.Error(t, err)
}

func TestPopulateAccessions_BadFileSkipped(t *testing.T) {
	cfg := testConfig(t)
	op := newMemOperator()
	pop := New(cfg, op)
	require.NoError(t, pop.PopulateTaxa(context.Background()))

	// Prepend a missing file; the good one still imports.
	cfg.Import.AccessionFiles = append(
		[]string{filepath.Join(t.TempDir(), "absent.gz")},
		cfg.Import.AccessionFiles...,
	)

	require.NoError(t, pop.PopulateAccessions(context.Background()))
	assert.Len(t, op.accessions, 2)
}

func TestPopulateAccessions_AllFilesFailed(t *testing.T) {
	cfg := testConfig(t)
	op := newMemOperator()
	pop := New(cfg, op)
	require.NoError(t, pop.PopulateTaxa(context.Background()))

	cfg.Import.AccessionFiles = []string{
		filepath.Join(t.TempDir(), "absent.gz"),
	}

	err := pop.PopulateAccessions(context.Background())
	require.Error(t, err)
}

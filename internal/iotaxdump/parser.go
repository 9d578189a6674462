// Package iotaxdump implements the parser for NCBI taxdump files.
// It reads nodes.dmp and names.dmp, filters out taxa the destination
// store already knows, and joins the two files by taxonomic id into
// merged taxon records. This is an impure I/O package.
package iotaxdump

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/gnuuid"
	"github.com/gnames/taxdb/internal/iofile"
	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/db"
	"github.com/gnames/taxdb/pkg/taxdb"
)

// sciNameMarker selects the rows of names.dmp that carry the
// scientific name of a taxon. Other name classes (synonyms, common
// names) are ignored.
const sciNameMarker = "scientific name"

// Parser joins nodes.dmp and names.dmp into taxon records.
type Parser struct {
	store         db.Store
	nodesPath     string
	namesPath     string
	jobsNum       int
	withCanonical bool
}

// New creates a taxdump parser. Default file paths come from cfg and
// can be overridden per Parse call or through the setters.
func New(cfg *config.Config, store db.Store) *Parser {
	return &Parser{
		store:         store,
		nodesPath:     cfg.Import.NodesFile,
		namesPath:     cfg.Import.NamesFile,
		jobsNum:       cfg.JobsNumber,
		withCanonical: cfg.CanonicalEnabled(),
	}
}

// SetNodesFile sets the default nodes.dmp path for subsequent Parse
// calls. The path is validated before the mutation happens.
func (p *Parser) SetNodesFile(path string) error {
	if path == "" {
		return iofile.ConfigurationError()
	}
	if err := iofile.Validate(path); err != nil {
		return err
	}
	p.nodesPath = path
	return nil
}

// SetNamesFile sets the default names.dmp path for subsequent Parse
// calls. The path is validated before the mutation happens.
func (p *Parser) SetNamesFile(path string) error {
	if path == "" {
		return iofile.ConfigurationError()
	}
	if err := iofile.Validate(path); err != nil {
		return err
	}
	p.namesPath = path
	return nil
}

// Parse reads nodes.dmp and names.dmp and returns merged taxon
// records in nodes-file order. Empty path arguments fall back to the
// parser defaults.
//
// Taxa already present in the store are filtered out of both files,
// so re-running against a partially populated database only produces
// the missing records. The merge is an explicit join keyed on the
// taxonomic id: a node without a scientific-name row is dropped, a
// scientific-name row without a node is ignored.
//
// Any error is fatal to the whole call, no partial result is
// returned.
func (p *Parser) Parse(
	ctx context.Context,
	nodesPath, namesPath string,
) ([]taxdb.TaxonNode, error) {
	if nodesPath == "" {
		nodesPath = p.nodesPath
	}
	if namesPath == "" {
		namesPath = p.namesPath
	}
	if nodesPath == "" || namesPath == "" {
		return nil, iofile.ConfigurationError()
	}
	if err := iofile.Validate(nodesPath); err != nil {
		return nil, err
	}
	if err := iofile.Validate(namesPath); err != nil {
		return nil, err
	}

	known, err := p.store.KnownTaxIDs(ctx)
	if err != nil {
		return nil, err
	}

	nodes, byID, err := parseNodes(nodesPath, known)
	if err != nil {
		return nil, err
	}
	if err = parseNames(namesPath, known, byID); err != nil {
		return nil, err
	}

	// Nodes that never got a scientific name are dropped from the
	// merge.
	res := make([]taxdb.TaxonNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Name == "" {
			continue
		}
		res = append(res, *n)
	}

	if p.withCanonical {
		if err = p.addCanonicals(ctx, res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// parseNodes streams nodes.dmp. Each line is pipe-delimited with
// tab-padded fields: taxid, parent taxid, rank.
func parseNodes(
	path string,
	known map[string]struct{},
) ([]*taxdb.TaxonNode, map[string]*taxdb.TaxonNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ReadError(path, err)
	}
	defer f.Close()

	var nodes []*taxdb.TaxonNode
	byID := make(map[string]*taxdb.TaxonNode)

	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			return nil, nil, MalformedRecordError(path, lineNum, line)
		}
		taxID := strings.Trim(fields[0], "\t")
		if _, ok := known[taxID]; ok {
			continue
		}
		node := &taxdb.TaxonNode{
			TaxID:       taxID,
			ParentTaxID: strings.Trim(fields[1], "\t"),
			Rank:        strings.Trim(fields[2], "\t"),
		}
		nodes = append(nodes, node)
		byID[taxID] = node
	}
	if err = sc.Err(); err != nil {
		return nil, nil, ReadError(path, err)
	}
	return nodes, byID, nil
}

// parseNames streams names.dmp and attaches scientific names to the
// nodes collected from nodes.dmp.
func parseNames(
	path string,
	known map[string]struct{},
	byID map[string]*taxdb.TaxonNode,
) error {
	f, err := os.Open(path)
	if err != nil {
		return ReadError(path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if !strings.Contains(line, sciNameMarker) {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 2 {
			return MalformedRecordError(path, lineNum, line)
		}
		taxID := strings.Trim(fields[0], "\t")
		if _, ok := known[taxID]; ok {
			continue
		}
		node, ok := byID[taxID]
		if !ok {
			continue
		}
		name := gnlib.FixUtf8(strings.Trim(fields[1], "\t"))
		node.Name = name
		node.NameID = gnuuid.New(name).String()
	}
	if err = sc.Err(); err != nil {
		return ReadError(path, err)
	}
	return nil
}

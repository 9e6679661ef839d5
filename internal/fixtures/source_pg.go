package fixtures

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/visitreview/internal/domain/artifact"
	"github.com/ehr/visitreview/internal/domain/chart"
)

// Document kinds stored in fixture_document.kind.
const (
	KindPatient         = "patient"
	KindVisit           = "visit"
	KindInsuranceNote   = "insurance_note"
	KindOrder           = "order"
	KindPatientArtifact = "patient_artifact"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PGSource reads fixtures from a seeded fixture_document table. The table is
// only ever read.
type PGSource struct {
	conn querier
}

func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{conn: pool}
}

// LoadPG reads the fixture set from the pool.
func LoadPG(ctx context.Context, pool *pgxpool.Pool) (*Set, error) {
	return NewPGSource(pool).Load(ctx)
}

func (s *PGSource) Load(ctx context.Context) (*Set, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT kind, body
		FROM fixture_document
		ORDER BY kind, position`)
	if err != nil {
		return nil, fmt.Errorf("query fixture documents: %w", err)
	}
	defer rows.Close()

	set := &Set{}
	for rows.Next() {
		var kind string
		var body []byte
		if err := rows.Scan(&kind, &body); err != nil {
			return nil, fmt.Errorf("scan fixture document: %w", err)
		}
		if err := set.addDocument(kind, body); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixture documents: %w", err)
	}
	return set, nil
}

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Seed replaces the contents of fixture_document with docs in a single
// transaction. Positions restart at zero for each kind. It is run by the
// operator CLI; the server never writes the table.
func Seed(ctx context.Context, conn beginner, docs []Document) (int, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM fixture_document`); err != nil {
		return 0, fmt.Errorf("clear fixture documents: %w", err)
	}

	positions := make(map[string]int)
	for _, d := range docs {
		pos := positions[d.Kind]
		positions[d.Kind]++
		if _, err := tx.Exec(ctx,
			`INSERT INTO fixture_document (kind, position, body) VALUES ($1, $2, $3)`,
			d.Kind, pos, []byte(d.Body),
		); err != nil {
			return 0, fmt.Errorf("insert %s %d: %w", d.Kind, pos, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(docs), nil
}

// FromDocuments builds a set from dumped seed documents.
func FromDocuments(docs []Document) (*Set, error) {
	set := &Set{}
	for _, d := range docs {
		if err := set.addDocument(d.Kind, d.Body); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// addDocument decodes one JSON document of the given kind into the set.
// Unknown kinds are an error so a typo in the seed does not silently drop
// data.
func (s *Set) addDocument(kind string, body []byte) error {
	switch kind {
	case KindPatient:
		var p chart.Patient
		if err := json.Unmarshal(body, &p); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		s.PatientList = append(s.PatientList, p)
	case KindVisit:
		var v chart.Visit
		if err := json.Unmarshal(body, &v); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		s.VisitList = append(s.VisitList, v)
	case KindInsuranceNote:
		var n artifact.InsuranceNote
		if err := json.Unmarshal(body, &n); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		s.InsuranceNoteList = append(s.InsuranceNoteList, n)
	case KindOrder:
		var o artifact.ClinicalOrder
		if err := json.Unmarshal(body, &o); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		s.OrderList = append(s.OrderList, o)
	case KindPatientArtifact:
		var a artifact.PatientArtifact
		if err := json.Unmarshal(body, &a); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		s.PatientArtifactList = append(s.PatientArtifactList, a)
	default:
		return fmt.Errorf("unknown fixture kind %q", kind)
	}
	return nil
}

// Documents flattens the set into (kind, body) pairs in fixture order, the
// inverse of what PGSource reads. Used by the dump command to produce seed
// data.
func (s *Set) Documents() ([]Document, error) {
	var docs []Document
	add := func(kind string, v interface{}) error {
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", kind, err)
		}
		docs = append(docs, Document{Kind: kind, Body: body})
		return nil
	}
	for _, p := range s.PatientList {
		if err := add(KindPatient, p); err != nil {
			return nil, err
		}
	}
	for _, v := range s.VisitList {
		if err := add(KindVisit, v); err != nil {
			return nil, err
		}
	}
	for _, n := range s.InsuranceNoteList {
		if err := add(KindInsuranceNote, n); err != nil {
			return nil, err
		}
	}
	for _, o := range s.OrderList {
		if err := add(KindOrder, o); err != nil {
			return nil, err
		}
	}
	for _, a := range s.PatientArtifactList {
		if err := add(KindPatientArtifact, a); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// Document is one row of fixture_document.
type Document struct {
	Kind string          `json:"kind"`
	Body json.RawMessage `json:"body"`
}

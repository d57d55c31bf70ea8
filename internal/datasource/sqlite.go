package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

// excerptLen matches the backend's truncation of regulation clause text in
// the graph payload.
const excerptLen = 100

// SQLiteReader provides read access to an assessment database. The schema
// mirrors the backend's store: documents, clauses, assessments and
// assessment_results; the graph is reconstructed here the same way the
// backend's /graph endpoint assembles its payload.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens an assessment database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LatestAssessmentID returns the most recent assessment's id.
func (r *SQLiteReader) LatestAssessmentID() (int64, error) {
	var id int64
	err := r.db.QueryRow(`SELECT id FROM assessments ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("database contains no assessments")
	}
	if err != nil {
		return 0, fmt.Errorf("querying assessments: %w", err)
	}
	return id, nil
}

// LoadLatestGraph builds the graph for the most recent assessment.
func (r *SQLiteReader) LoadLatestGraph() (*model.Graph, []string, error) {
	id, err := r.LatestAssessmentID()
	if err != nil {
		return nil, nil, err
	}
	return r.LoadGraph(id)
}

// LoadGraph builds the graph for one assessment: standard nodes from the
// regulation document's clauses, requirement nodes and status edges from
// the assessment results.
func (r *SQLiteReader) LoadGraph(assessmentID int64) (*model.Graph, []string, error) {
	var custDocID, regDocID int64
	err := r.db.QueryRow(
		`SELECT customer_doc_id, regulation_doc_id FROM assessments WHERE id = ?`,
		assessmentID,
	).Scan(&custDocID, &regDocID)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("assessment %d not found", assessmentID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying assessment %d: %w", assessmentID, err)
	}

	var nodes []model.Node
	var edges []model.Edge
	present := make(map[string]bool)

	// Regulation clauses become standard nodes.
	rows, err := r.db.Query(
		`SELECT id, clause_id, text, page_number FROM clauses WHERE document_id = ? ORDER BY id`,
		regDocID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("querying regulation clauses: %w", err)
	}
	for rows.Next() {
		var rowID, page int64
		var clauseID, text string
		if err := rows.Scan(&rowID, &clauseID, &text, &page); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scanning clause: %w", err)
		}
		id := fmt.Sprintf("reg_%d", rowID)
		present[id] = true
		nodes = append(nodes, model.Node{
			ID:      id,
			Kind:    model.KindStandard,
			Label:   clauseID,
			Status:  model.StatusUnknown,
			Excerpt: excerpt(text),
			Page:    int(page),
			DocID:   int(regDocID),
		})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, nil, fmt.Errorf("iterating clauses: %w", err)
	}
	rows.Close()

	// Assessment results become requirement nodes plus one edge each.
	rows, err = r.db.Query(`
		SELECT r.customer_clause_id, r.regulation_clause_id, r.status, r.risk,
		       r.reasoning, r.evidence_text,
		       COALESCE(c.clause_id, ''), COALESCE(c.page_number, 0)
		FROM assessment_results r
		LEFT JOIN clauses c ON c.id = r.customer_clause_id
		WHERE r.assessment_id = ?
		ORDER BY r.id`,
		assessmentID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("querying assessment results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var custClauseID, regClauseID, page int64
		var status, risk, reasoning, evidence, label string
		if err := rows.Scan(&custClauseID, &regClauseID, &status, &risk,
			&reasoning, &evidence, &label, &page); err != nil {
			return nil, nil, fmt.Errorf("scanning result: %w", err)
		}
		if label == "" {
			label = fmt.Sprintf("%d", custClauseID)
		}
		id := fmt.Sprintf("cust_%d", custClauseID)
		if !present[id] {
			present[id] = true
			nodes = append(nodes, model.Node{
				ID:        id,
				Kind:      model.KindRequirement,
				Label:     label,
				Status:    model.ParseStatus(status),
				Risk:      model.ParseRisk(risk),
				Reasoning: reasoning,
				Evidence:  evidence,
				Page:      int(page),
				DocID:     int(custDocID),
			})
		}
		edges = append(edges, model.Edge{
			From:   id,
			To:     fmt.Sprintf("reg_%d", regClauseID),
			Status: model.ParseStatus(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating results: %w", err)
	}

	var warnings []string
	for _, e := range edges {
		if !present[e.From] || !present[e.To] {
			warnings = append(warnings, fmt.Sprintf("edge %s -> %s references a missing node: not drawable", e.From, e.To))
		}
	}

	return model.NewGraph(nodes, edges), warnings, nil
}

// validateSQLite checks that a database has the assessment schema and at
// least one assessment. Returns a node count estimate (clauses involved in
// the latest assessment's documents).
func validateSQLite(path string) (int, error) {
	r, err := NewSQLiteReader(DataSource{Type: SourceTypeSQLite, Path: path})
	if err != nil {
		return 0, err
	}
	defer r.Close()

	id, err := r.LatestAssessmentID()
	if err != nil {
		return 0, err
	}

	var n int
	err = r.db.QueryRow(`
		SELECT COUNT(*) FROM clauses
		WHERE document_id IN (
			SELECT customer_doc_id FROM assessments WHERE id = ?
			UNION
			SELECT regulation_doc_id FROM assessments WHERE id = ?
		)`, id, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting clauses: %w", err)
	}
	return n, nil
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLen {
		return text
	}
	return string(runes[:excerptLen]) + "..."
}

package model

import "testing"

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"regulation", KindStandard},
		{"REGULATION", KindStandard},
		{"customer", KindRequirement},
		{"", KindRequirement},
		{"anything-else", KindRequirement},
	}
	for _, c := range cases {
		if got := ParseKind(c.in); got != c.want {
			t.Errorf("ParseKind(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"COMPLIANT", StatusCompliant},
		{"compliant", StatusCompliant},
		{"PARTIAL", StatusPartial},
		{"NON_COMPLIANT", StatusNonCompliant},
		{"", StatusUnknown},
		{"garbage", StatusUnknown},
	}
	for _, c := range cases {
		if got := ParseStatus(c.in); got != c.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewGraph_FirstDuplicateWins(t *testing.T) {
	g := NewGraph([]Node{
		{ID: "a", Label: "first"},
		{ID: "a", Label: "second"},
	}, nil)
	if n := g.NodeByID("a"); n == nil || n.Label != "first" {
		t.Errorf("NodeByID(a) = %+v, want the first occurrence", n)
	}
}

func TestDrawableEdges_SkipsMissingEndpoints(t *testing.T) {
	g := NewGraph(
		[]Node{
			{ID: "reg_1", Kind: KindStandard},
			{ID: "cust_1", Kind: KindRequirement},
		},
		[]Edge{
			{From: "cust_1", To: "reg_1", Status: StatusCompliant},
			{From: "cust_1", To: "reg_404"},
			{From: "ghost", To: "reg_1"},
		},
	)
	drawable := g.DrawableEdges()
	if len(drawable) != 1 {
		t.Fatalf("got %d drawable edges, want 1", len(drawable))
	}
	if drawable[0].From != "cust_1" || drawable[0].To != "reg_1" {
		t.Errorf("drawable edge = %+v", drawable[0])
	}
	// The undrawable edges stay in the graph; only rendering skips them.
	if len(g.Edges) != 3 {
		t.Errorf("graph kept %d edges, want all 3", len(g.Edges))
	}
}

func TestSummarize(t *testing.T) {
	g := NewGraph([]Node{
		{ID: "reg_1", Kind: KindStandard, Status: StatusNonCompliant}, // status ignored for standards
		{ID: "cust_1", Kind: KindRequirement, Status: StatusCompliant},
		{ID: "cust_2", Kind: KindRequirement, Status: StatusPartial, Risk: RiskHigh},
		{ID: "cust_3", Kind: KindRequirement, Status: StatusNonCompliant},
		{ID: "cust_4", Kind: KindRequirement},
	}, nil)

	s := g.Summarize()
	want := Summary{
		Standards:    1,
		Requirements: 4,
		Compliant:    1,
		Partial:      1,
		NonCompliant: 1,
		Unknown:      1,
		HighRisk:     1,
	}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}
}

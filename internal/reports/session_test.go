package reports

import "testing"

func TestSessionDiscardsStaleResponse(t *testing.T) {
	var sess Session

	first := NewQuery(ReportRentRoll, map[string]string{"as_of_date": "2026-08-01"})
	second := NewQuery(ReportRentRoll, map[string]string{"as_of_date": "2026-08-23"})

	sess.Begin(first)
	sess.Begin(second)

	if applied := sess.Resolve(first, "stale payload"); applied {
		t.Fatalf("superseded response must be discarded")
	}
	if data, loading := sess.Snapshot(); data != nil || !loading {
		t.Fatalf("stale resolve must leave the view loading, got data=%v loading=%v", data, loading)
	}

	if applied := sess.Resolve(second, "fresh payload"); !applied {
		t.Fatalf("active response must apply")
	}
	data, loading := sess.Snapshot()
	if loading {
		t.Fatalf("resolve must end loading")
	}
	if data != "fresh payload" {
		t.Fatalf("data = %v, want fresh payload", data)
	}
}

func TestSessionBeginClearsPreviousData(t *testing.T) {
	var sess Session
	q := NewQuery(ReportTrialBalance, nil)
	sess.Begin(q)
	if !sess.Resolve(q, "payload") {
		t.Fatal("resolve should apply")
	}

	sess.Begin(NewQuery(ReportTrialBalance, map[string]string{"start_date": "2026-01-01"}))
	if data, loading := sess.Snapshot(); data != nil || !loading {
		t.Fatalf("begin must clear data and enter loading, got data=%v loading=%v", data, loading)
	}
}

func TestSessionFail(t *testing.T) {
	var sess Session
	first := NewQuery(ReportAgedAnalysis, map[string]string{"property_id": "1"})
	second := NewQuery(ReportAgedAnalysis, map[string]string{"property_id": "2"})

	sess.Begin(second)
	if sess.Fail(first) {
		t.Fatalf("failure for a superseded query must be ignored")
	}
	if _, loading := sess.Snapshot(); !loading {
		t.Fatalf("stale failure must not end loading")
	}

	if !sess.Fail(second) {
		t.Fatalf("failure for the active query must apply")
	}
	if data, loading := sess.Snapshot(); data != nil || loading {
		t.Fatalf("failed fetch leaves the empty state, got data=%v loading=%v", data, loading)
	}
}

package docstore_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"gig-coordinator/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, id string, v any) *docstore.Document {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return &docstore.Document{Collection: "hires", ID: id, Data: data, Version: 1}
}

func TestMergeFields(t *testing.T) {
	merged, err := docstore.MergeFields([]byte(`{"a":1,"b":"x"}`), map[string]any{"b": "y", "c": nil})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":"y","c":null}`, string(merged))
}

func TestEncode_RejectsInvalidRawJSON(t *testing.T) {
	_, err := docstore.Encode([]byte("{"))
	assert.Error(t, err)

	data, err := docstore.Encode([]byte(`{"k":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"k":1}`, string(data))
}

func TestQuery_Apply(t *testing.T) {
	type hire struct {
		WorkerUID string    `json:"workerUid"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"createdAt"`
	}
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	docs := []*docstore.Document{
		doc(t, "h1", hire{"w1", "proposed", base}),
		doc(t, "h2", hire{"w1", "proposed", base.Add(500 * time.Millisecond)}),
		doc(t, "h3", hire{"w1", "rejected", base.Add(time.Hour)}),
		doc(t, "h4", hire{"w2", "proposed", base.Add(2 * time.Hour)}),
		doc(t, "h0", hire{"w1", "proposed", base}),
	}

	type status string
	q := docstore.NewQuery("hires").
		Where("workerUid", "w1").
		Where("status", status("proposed")).
		OrderByField("createdAt", true)

	got := q.Apply(docs)
	ids := []string{}
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	// Sub-second instants compare as times, ties fall back to id.
	assert.Equal(t, []string{"h2", "h0", "h1"}, ids)

	limited := q.WithLimit(1).Apply(docs)
	require.Len(t, limited, 1)
	assert.Equal(t, "h2", limited[0].ID)
}

func TestQuery_MatchesNestedField(t *testing.T) {
	q := docstore.NewQuery("hires").Where("jobSnapshot.title", "Barista")
	assert.True(t, q.Matches(map[string]any{"jobSnapshot": map[string]any{"title": "Barista"}}))
	assert.False(t, q.Matches(map[string]any{"jobSnapshot": "Barista"}))
	assert.False(t, q.Matches(map[string]any{}))

	assert.Equal(t, map[string]any{"jobSnapshot": map[string]any{"title": "Barista"}}, q.FilterMap())
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"numbers", 1.0, 2.0, -1},
		{"equal strings", "a", "a", 0},
		{"times", "2024-05-01T10:00:00Z", "2024-05-01T10:00:00.5Z", -1},
		{"nil first", nil, "x", -1},
		{"bools", true, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docstore.CompareValues(tt.a, tt.b))
		})
	}
}

func TestIndexSet_Check(t *testing.T) {
	q := docstore.NewQuery("hires").Where("workerUid", "w").Where("status", "proposed").OrderByField("createdAt", true)

	err := docstore.NewIndexSet().Check(q)
	assert.ErrorIs(t, err, docstore.ErrIndexUnavailable)

	ix, err := docstore.ParseIndex("hires:status,workerUid:createdAt")
	require.NoError(t, err)
	assert.NoError(t, docstore.NewIndexSet(ix).Check(q))

	// Equality and order on the same field, or no ordering, need nothing.
	assert.NoError(t, docstore.NewIndexSet().Check(docstore.NewQuery("hires").Where("status", "x").OrderByField("status", false)))
	assert.NoError(t, docstore.NewIndexSet().Check(docstore.NewQuery("hires").Where("status", "x")))

	_, err = docstore.ParseIndex("hires:createdAt")
	assert.Error(t, err)
}

func TestFeed_CoalescesAndKeepsLatest(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var versions []int64

	feed := docstore.NewFeed(func(s docstore.Snapshot) {
		<-release
		mu.Lock()
		versions = append(versions, s.Documents[0].Version)
		mu.Unlock()
	}, nil)
	defer feed.Close()

	for v := int64(1); v <= 5; v++ {
		feed.Push(docstore.Snapshot{Documents: []*docstore.Document{{ID: "a", Version: v}}})
		if v == 1 {
			// Let the goroutine pick up the first snapshot and block on release.
			time.Sleep(20 * time.Millisecond)
		}
	}
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(versions) > 0 && versions[len(versions)-1] == 5
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int64{1, 5}, versions)
}

func TestFeed_FailEndsDelivery(t *testing.T) {
	errs := make(chan error, 1)
	feed := docstore.NewFeed(func(docstore.Snapshot) {}, func(err error) { errs <- err })

	errBoom := errors.New("boom")
	feed.Fail(errBoom)

	select {
	case err := <-errs:
		assert.Same(t, errBoom, err)
	case <-time.After(time.Second):
		t.Fatal("error not delivered")
	}
	<-feed.Done()
}

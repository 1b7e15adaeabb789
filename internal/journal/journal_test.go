package journal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/metrics"
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/scoring"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/store"
)

func setup(t *testing.T) (*Journal, *store.Store, *metrics.Metrics, *session.Engine) {
	t.Helper()
	db, err := store.Open(fmt.Sprintf("file:journal-%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := metrics.New(prometheus.NewRegistry())
	var n int
	engine := session.NewEngine(questionbank.Default(), session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}))
	return New(db.EventRepo(), db.ResultRepo(), m, nil), db, m, engine
}

// run starts a session, records answers with opt until done, and
// completes it when complete is set.
func run(t *testing.T, j *Journal, e *session.Engine, userID, opt string, complete bool) *session.Session {
	t.Helper()
	ctx := context.Background()
	s := e.Start(userID)
	require.NoError(t, j.Started(ctx, s))
	for {
		q, ok := e.Next(s)
		if !ok {
			break
		}
		out, err := e.Submit(s, q.ID, opt, time.Second)
		require.NoError(t, err)
		require.NoError(t, j.Answered(ctx, s, *out.Record, q.Kind))
	}
	if complete {
		_, err := e.Complete(s)
		require.NoError(t, err)
		require.NoError(t, j.Completed(ctx, s))
	}
	return s
}

func TestJournal_CompletedSessionIsQueryable(t *testing.T) {
	j, _, m, e := setup(t)
	s := run(t, j, e, "u1", "A", true)

	entry, err := j.Result(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, diagnosis.TypeExplorer, entry.Result.Primary)
	assert.Equal(t, s.Result.Confidence, entry.Result.Confidence)
	assert.Equal(t, s.Result.TraitScores, entry.Result.TraitScores)

	hist, err := j.History(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, s.ID, hist[0].SessionID)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCompleted.WithLabelValues("explorer")))
}

func TestJournal_ResultNotFound(t *testing.T) {
	j, _, _, _ := setup(t)
	_, err := j.Result(context.Background(), "missing")
	assert.True(t, store.IsNotFound(err))
}

func TestJournal_CompletedWithoutResult(t *testing.T) {
	j, _, _, e := setup(t)
	assert.Error(t, j.Completed(context.Background(), e.Start("")))
}

func TestJournal_Abandoned(t *testing.T) {
	j, db, m, e := setup(t)
	ctx := context.Background()
	s := e.Start("u2")
	require.NoError(t, j.Started(ctx, s))
	_, err := e.Submit(s, "motivation_source", "B", 3*time.Second)
	require.NoError(t, err)
	require.NoError(t, e.Abandon(s))
	require.NoError(t, j.Abandoned(ctx, s))

	evs, err := db.EventRepo().SessionEvents(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, store.ActionAbandon, evs[1].Action)
	assert.Equal(t, 1, evs[1].Answered)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsAbandoned))
}

func TestJournal_Rejected(t *testing.T) {
	j, _, m, _ := setup(t)
	j.Rejected(&scoring.InvalidOptionError{QuestionID: "q", OptionID: "Z"})
	j.Rejected(fmt.Errorf("wrapped: %w", &session.UnexpectedQuestionError{Got: "q"}))
	j.Rejected(session.ErrSessionCompleted)
	j.Rejected(errors.New("other"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidAnswers.WithLabelValues("invalid_option")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidAnswers.WithLabelValues("unexpected_question")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidAnswers.WithLabelValues("session_closed")))
}

func TestJournal_Replay(t *testing.T) {
	j, _, _, e := setup(t)
	orig := run(t, j, e, "u3", "A", false)

	replayed, err := j.Replay(context.Background(), e, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "u3", replayed.UserID)
	assert.Equal(t, session.StatusActive, replayed.Status)
	assert.Equal(t, orig.Scores, replayed.Scores)
	assert.Equal(t, orig.AskedFollowups, replayed.AskedFollowups)
	require.Len(t, replayed.Answers, len(orig.Answers))

	res, err := e.Complete(replayed)
	require.NoError(t, err)
	assert.Equal(t, diagnosis.TypeExplorer, res.Primary)

	_, err = j.Replay(context.Background(), e, "missing")
	assert.True(t, store.IsNotFound(err))
}

func TestJournal_NoStores(t *testing.T) {
	j := New(nil, nil, nil, nil)
	e := session.NewEngine(questionbank.Default())
	ctx := context.Background()

	s := e.Start("")
	assert.NoError(t, j.Started(ctx, s))
	assert.NoError(t, j.Abandoned(ctx, s))

	_, err := j.Result(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = j.History(ctx, "u", 5)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = j.Replay(ctx, e, s.ID)
	assert.ErrorIs(t, err, ErrNoStore)
}

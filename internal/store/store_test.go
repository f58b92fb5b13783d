package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProfile(id, user string, created time.Time) *blueprint.Profile {
	return &blueprint.Profile{
		ID:            id,
		UserID:        user,
		Role:          "Full-Stack Developer",
		Level:         blueprint.LevelMid,
		TechStack:     []string{"React", "Node.js"},
		QuestionTypes: []assess.QuestionType{assess.TypeMCQ, assess.TypeCoding},
		Duration:      60,
		Refinement:    "Focus on hooks",
		CreatedAt:     created,
	}
}

func sampleTest(id, profileID string, created time.Time) *assess.Test {
	return &assess.Test{
		ID:        id,
		ProfileID: profileID,
		Questions: []assess.Question{
			{ID: "q1", Type: assess.TypeMCQ, Title: "Hooks", Content: "Which hook?", Options: []string{"a", "b", "c", "d"},
				Difficulty: assess.DifficultyEasy, Skills: []string{"React"}, TimeEstimate: 3, Points: 10},
		},
		Metadata: assess.TestMetadata{
			TotalQuestions:         1,
			TotalTime:              3,
			DifficultyDistribution: map[string]int{"easy": 1},
			SkillDistribution:      map[string]int{"React": 1},
		},
		CreatedAt: created,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"profiles", "tests", "attempts", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestWithConnParams(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_time_format=sqlite", withConnParams("a.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)&_time_format=sqlite", withConnParams("file:x?mode=memory"))
}

func TestProfileRepo_CreateGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, sampleProfile("p1", "u1", created)))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, blueprint.LevelMid, got.Level)
	assert.Equal(t, []string{"React", "Node.js"}, got.TechStack)
	assert.Equal(t, []assess.QuestionType{assess.TypeMCQ, assess.TypeCoding}, got.QuestionTypes)
	assert.Equal(t, 60, got.Duration)
	assert.Equal(t, "Focus on hooks", got.Refinement)
	assert.True(t, created.Equal(got.CreatedAt), "created_at = %v", got.CreatedAt)
}

func TestProfileRepo_GetUnknown(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ProfileRepo().Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "profile", nf.Kind)
}

func TestProfileRepo_ListByUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, sampleProfile("p1", "u1", base)))
	require.NoError(t, repo.Create(ctx, sampleProfile("p2", "u2", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, sampleProfile("p3", "u1", base.Add(2*time.Minute))))

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "p3", mine[0].ID, "newest first")
	assert.Equal(t, "p1", mine[1].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTestRepo_CreateGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.ProfileRepo().Create(ctx, sampleProfile("p1", "u1", now)))
	require.NoError(t, s.TestRepo().Create(ctx, sampleTest("t1", "p1", now)))

	got, err := s.TestRepo().Get(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Hooks", got.Questions[0].Title)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got.Questions[0].Options)
	assert.Equal(t, 1, got.Metadata.SkillDistribution["React"])

	byProfile, err := s.TestRepo().GetByProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "t1", byProfile.ID)

	_, err = s.TestRepo().GetByProfile(ctx, "p-none")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTestRepo_ForeignKeyEnforced(t *testing.T) {
	s := openTestStore(t)
	err := s.TestRepo().Create(context.Background(), sampleTest("t1", "no-such-profile", time.Now()))
	require.Error(t, err)
}

func TestAttemptRepo_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.ProfileRepo().Create(ctx, sampleProfile("p1", "u1", start)))
	require.NoError(t, s.TestRepo().Create(ctx, sampleTest("t1", "p1", start)))

	a := &assess.Attempt{ID: "a1", TestID: "t1", UserID: "u1", StartTime: start}
	require.NoError(t, s.AttemptRepo().Create(ctx, a))

	got, err := s.AttemptRepo().Get(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Evaluation)
	assert.Empty(t, got.Answers)

	end := start.Add(30 * time.Minute)
	score := 70
	got.Answers = []assess.Answer{{QuestionID: "q1", Answer: "useState", TimeSpent: 42}}
	got.EndTime = &end
	got.Score = &score
	got.Evaluation = &assess.EvaluationResult{OverallScore: 70, DetailedFeedback: "Overall performance: Good."}
	got.Completed = true
	require.NoError(t, s.AttemptRepo().Update(ctx, got))

	done, err := s.AttemptRepo().Get(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.Score)
	assert.Equal(t, 70, *done.Score)
	require.NotNil(t, done.EndTime)
	assert.True(t, end.Equal(*done.EndTime))
	require.NotNil(t, done.Evaluation)
	assert.Equal(t, "Overall performance: Good.", done.Evaluation.DetailedFeedback)
	require.Len(t, done.Answers, 1)
	assert.Equal(t, 42, done.Answers[0].TimeSpent)
}

func TestAttemptRepo_UpdateCompletedRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.ProfileRepo().Create(ctx, sampleProfile("p1", "u1", start)))
	require.NoError(t, s.TestRepo().Create(ctx, sampleTest("t1", "p1", start)))
	require.NoError(t, s.AttemptRepo().Create(ctx, &assess.Attempt{ID: "a1", TestID: "t1", UserID: "u1", StartTime: start}))

	first, err := s.AttemptRepo().Get(ctx, "a1")
	require.NoError(t, err)
	second, err := s.AttemptRepo().Get(ctx, "a1")
	require.NoError(t, err)

	score := 80
	first.Score = &score
	first.Completed = true
	require.NoError(t, s.AttemptRepo().Update(ctx, first))

	other := 10
	second.Score = &other
	second.Completed = true
	err = s.AttemptRepo().Update(ctx, second)
	require.ErrorIs(t, err, ErrAttemptCompleted)

	got, err := s.AttemptRepo().Get(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 80, *got.Score)
}

func TestAttemptRepo_UpdateUnknown(t *testing.T) {
	s := openTestStore(t)
	err := s.AttemptRepo().Update(context.Background(), &assess.Attempt{ID: "ghost"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAttemptRepo_ListOrderedByStart(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.ProfileRepo().Create(ctx, sampleProfile("p1", "u1", base)))
	require.NoError(t, s.TestRepo().Create(ctx, sampleTest("t1", "p1", base)))
	require.NoError(t, s.AttemptRepo().Create(ctx, &assess.Attempt{ID: "late", TestID: "t1", UserID: "u1", StartTime: base.Add(time.Hour)}))
	require.NoError(t, s.AttemptRepo().Create(ctx, &assess.Attempt{ID: "early", TestID: "t1", UserID: "u1", StartTime: base}))
	require.NoError(t, s.AttemptRepo().Create(ctx, &assess.Attempt{ID: "other", TestID: "t1", UserID: "u2", StartTime: base}))

	mine, err := s.AttemptRepo().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "early", mine[0].ID)
	assert.Equal(t, "late", mine[1].ID)
}

package course

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// AddExercise inserts the exercise row and its questions in declared order,
// all in one transaction. Question rows get an explicit 1-based QuestionId so
// their ordering survives reloads. Returns ErrExerciseExists when the id is
// already taken; the database is left untouched in that case.
func (s *SQLiteStore) AddExercise(ctx context.Context, exercise Exercise) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var found int
	err = tx.QueryRowContext(
		ctx,
		`SELECT 1 FROM Exercise WHERE ExerciseId = ? LIMIT 1`,
		exercise.ID,
	).Scan(&found)
	switch {
	case err == nil:
		return 0, ErrExerciseExists
	case !errors.Is(err, sql.ErrNoRows):
		return 0, err
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO Exercise (ExerciseId, Name, DueDate) VALUES (?, ?, ?)`,
		exercise.ID,
		exercise.Name,
		exercise.DueDate.UnixMilli(),
	); err != nil {
		return 0, err
	}

	for idx, question := range exercise.Questions {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO Question (ExerciseId, QuestionId, Name, "Desc", Points) VALUES (?, ?, ?, ?, ?)`,
			exercise.ID,
			idx+1,
			question.Name,
			question.Description,
			question.Points,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.log.Debug().Int64("exercise_id", exercise.ID).Int("questions", len(exercise.Questions)).Msg("exercise added")
	return exercise.ID, nil
}

// LoadExercises returns every exercise sorted by id ascending, each with its
// questions in insertion order.
func (s *SQLiteStore) LoadExercises(ctx context.Context) ([]Exercise, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT ExerciseId, Name, DueDate FROM Exercise ORDER BY ExerciseId ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var (
			exercise  Exercise
			dueMillis int64
		)
		if err := rows.Scan(&exercise.ID, &exercise.Name, &dueMillis); err != nil {
			return nil, err
		}
		exercise.DueDate = time.UnixMilli(dueMillis).UTC()
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One question lookup per exercise. N+1, but exercise counts are small and
	// this is not a hot path.
	for i := range exercises {
		questions, err := s.loadQuestions(ctx, exercises[i].ID)
		if err != nil {
			return nil, err
		}
		exercises[i].Questions = questions
	}

	return exercises, nil
}

func (s *SQLiteStore) loadQuestions(ctx context.Context, exerciseID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT Name, "Desc", Points FROM Question WHERE ExerciseId = ? ORDER BY QuestionId ASC`,
		exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]Question, 0)
	for rows.Next() {
		var question Question
		if err := rows.Scan(&question.Name, &question.Description, &question.Points); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

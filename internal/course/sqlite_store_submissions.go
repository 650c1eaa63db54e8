package course

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// StoreSubmission inserts the submission row and its per-question grade rows
// in one transaction.
//
// The user is resolved by username inside the transaction; an unknown user
// yields ErrUserNotFound and nothing is written. When submission.ID is set,
// that id is inserted explicitly; otherwise the store assigns one and resolves
// it through last_insert_rowid() on the inserting connection, so the result is
// atomic with the insert even though no global lock is held.
//
// Grade rows are keyed by the same 1-based question positions AddExercise
// assigns, in vector order.
func (s *SQLiteStore) StoreSubmission(ctx context.Context, submission Submission) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(
		ctx,
		`SELECT UserId FROM User WHERE Username = ?`,
		submission.Username,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	submittedAt := submission.SubmittedAt.UnixMilli()

	var id int64
	if submission.ID != nil {
		id = *submission.ID
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO Submission (SubmissionId, UserId, ExerciseId, SubmissionTime) VALUES (?, ?, ?, ?)`,
			id,
			userID,
			submission.ExerciseID,
			submittedAt,
		); err != nil {
			return 0, err
		}
	} else {
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO Submission (UserId, ExerciseId, SubmissionTime) VALUES (?, ?, ?)`,
			userID,
			submission.ExerciseID,
			submittedAt,
		)
		if err != nil {
			return 0, err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, err
		}
	}

	for idx, grade := range submission.Grades {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO QuestionGrade (SubmissionId, QuestionId, Grade) VALUES (?, ?, ?)`,
			id,
			idx+1,
			grade,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.log.Debug().
		Int64("submission_id", id).
		Str("username", submission.Username).
		Int64("exercise_id", submission.ExerciseID).
		Msg("submission stored")
	return id, nil
}

// A submissionPlan selects exactly one submission for a (username, exercise)
// pair and emits one {SubmissionId, QuestionId, Grade, SubmissionTime} row per
// graded question of it, ordered by QuestionId and capped by the exercise's
// question count. Plans are internal; callers go through LastSubmission and
// BestSubmission.
type submissionPlan struct {
	name  string
	query string
}

// lastSubmissionPlan picks the submission with the maximum SubmissionTime.
// Ties are broken arbitrarily by the inner LIMIT 1.
var lastSubmissionPlan = submissionPlan{
	name: "last",
	query: `
		SELECT Submission.SubmissionId AS SubmissionId, QuestionGrade.QuestionId, Grade, SubmissionTime
		FROM QuestionGrade
		JOIN Submission ON QuestionGrade.SubmissionId = Submission.SubmissionId
		WHERE Submission.SubmissionId IN (
			SELECT SubmissionId
			FROM Submission
			WHERE UserId IN (SELECT UserId FROM User WHERE Username = ?)
			  AND ExerciseId = ?
			ORDER BY SubmissionTime DESC
			LIMIT 1
		)
		ORDER BY QuestionGrade.QuestionId ASC
		LIMIT ?`,
}

// bestSubmissionPlan picks the submission whose weighted total SUM(Grade*Points)
// is maximal. The Question join matches on QuestionId AND ExerciseId: question
// ids are scoped per exercise, not globally unique.
var bestSubmissionPlan = submissionPlan{
	name: "best",
	query: `
		SELECT Submission.SubmissionId AS SubmissionId, QuestionGrade.QuestionId, Grade, SubmissionTime
		FROM QuestionGrade
		JOIN Submission ON QuestionGrade.SubmissionId = Submission.SubmissionId
		WHERE Submission.SubmissionId IN (
			SELECT Submission.SubmissionId
			FROM Submission
			LEFT JOIN QuestionGrade ON QuestionGrade.SubmissionId = Submission.SubmissionId
			LEFT JOIN Question ON Question.QuestionId = QuestionGrade.QuestionId
			  AND Question.ExerciseId = Submission.ExerciseId
			WHERE UserId IN (SELECT UserId FROM User WHERE Username = ?)
			  AND Submission.ExerciseId = ?
			GROUP BY Submission.SubmissionId
			ORDER BY SUM(Grade * Points) DESC
			LIMIT 1
		)
		ORDER BY QuestionGrade.QuestionId ASC
		LIMIT ?`,
}

// LastSubmission returns the user's most recent submission for the exercise,
// or nil when the user never submitted it (or does not exist).
func (s *SQLiteStore) LastSubmission(ctx context.Context, user User, exercise Exercise) (*Submission, error) {
	return s.submissionByPlan(ctx, user, exercise, lastSubmissionPlan)
}

// BestSubmission returns the user's submission with the highest weighted total
// for the exercise, or nil when the user never submitted it.
func (s *SQLiteStore) BestSubmission(ctx context.Context, user User, exercise Exercise) (*Submission, error) {
	return s.submissionByPlan(ctx, user, exercise, bestSubmissionPlan)
}

// submissionByPlan executes a plan and materializes the result. The first row
// carries the submission id and time (identical across all rows of one
// submission); grades are appended in row order, which is QuestionId order.
func (s *SQLiteStore) submissionByPlan(ctx context.Context, user User, exercise Exercise, plan submissionPlan) (*Submission, error) {
	rows, err := s.db.QueryContext(ctx, plan.query, user.Username, exercise.ID, len(exercise.Questions))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submission *Submission
	for rows.Next() {
		var (
			id              int64
			questionID      int64
			grade           float64
			submittedMillis int64
		)
		if err := rows.Scan(&id, &questionID, &grade, &submittedMillis); err != nil {
			return nil, err
		}
		if submission == nil {
			submission = &Submission{
				ID:          &id,
				Username:    user.Username,
				ExerciseID:  exercise.ID,
				SubmittedAt: time.UnixMilli(submittedMillis).UTC(),
				Grades:      make([]float64, 0, len(exercise.Questions)),
			}
		}
		submission.Grades = append(submission.Grades, grade)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if submission == nil {
		s.log.Debug().
			Str("plan", plan.name).
			Str("username", user.Username).
			Int64("exercise_id", exercise.ID).
			Msg("no submission")
	}
	return submission, nil
}

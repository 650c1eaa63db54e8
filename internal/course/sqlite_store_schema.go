package course

import (
	"context"
)

// ensureSchema creates the five course tables if they are missing. Column
// names and types are the wire contract; keep them stable.
//
// The Question/QuestionGrade foreign keys mirror the declared schema but are
// not enforced at runtime (sqlite leaves foreign_keys off by default, and the
// QuestionGrade->Question reference points at a non-unique column). User
// existence is checked at write time instead, in StoreSubmission.
func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS User (
			UserId INTEGER PRIMARY KEY,
			Username TEXT UNIQUE,
			Firstname TEXT,
			Lastname TEXT,
			Password TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS Exercise (
			ExerciseId INTEGER PRIMARY KEY,
			Name TEXT,
			DueDate INTEGER
		);`,
		// "Desc" needs quoting: DESC is an SQL keyword.
		`CREATE TABLE IF NOT EXISTS Question (
			ExerciseId INTEGER,
			QuestionId INTEGER,
			Name TEXT,
			"Desc" TEXT,
			Points INTEGER,
			PRIMARY KEY (ExerciseId, QuestionId),
			FOREIGN KEY (ExerciseId) REFERENCES Exercise(ExerciseId)
		);`,
		`CREATE TABLE IF NOT EXISTS Submission (
			SubmissionId INTEGER PRIMARY KEY,
			UserId INTEGER,
			ExerciseId INTEGER,
			SubmissionTime INTEGER,
			FOREIGN KEY (ExerciseId) REFERENCES Exercise(ExerciseId)
		);`,
		`CREATE TABLE IF NOT EXISTS QuestionGrade (
			SubmissionId INTEGER,
			QuestionId INTEGER,
			Grade REAL,
			PRIMARY KEY (SubmissionId, QuestionId),
			FOREIGN KEY (SubmissionId) REFERENCES Submission(SubmissionId),
			FOREIGN KEY (QuestionId) REFERENCES Question(QuestionId)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submission_user_exercise ON Submission(UserId, ExerciseId);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

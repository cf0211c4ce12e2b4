// Package memstore is an in-memory academytx.Runner for tests. Every unit of work
// runs against a private copy of the state that replaces the shared state on commit.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"academy-service/internal/domain"
	"academy-service/internal/ports/academytx"
)

type courseRow struct {
	title     string
	teacherID *int64
}

type studentRow struct {
	firstName string
	lastName  string
}

type state struct {
	teachers    map[int64]string
	students    map[int64]studentRow
	courses     map[int64]courseRow
	enrollments map[domain.Enrollment]struct{}
	seq         int64
}

func newState() state {
	return state{
		teachers:    map[int64]string{},
		students:    map[int64]studentRow{},
		courses:     map[int64]courseRow{},
		enrollments: map[domain.Enrollment]struct{}{},
	}
}

func (s state) clone() state {
	out := newState()
	out.seq = s.seq
	for k, v := range s.teachers {
		out.teachers[k] = v
	}
	for k, v := range s.students {
		out.students[k] = v
	}
	for k, v := range s.courses {
		if v.teacherID != nil {
			id := *v.teacherID
			v.teacherID = &id
		}
		out.courses[k] = v
	}
	for k := range s.enrollments {
		out.enrollments[k] = struct{}{}
	}
	return out
}

// ErrReadOnly is returned for writes and locking reads inside WithReadTx.
var ErrReadOnly = errors.New("read-only unit of work")

// Store holds the committed state.
type Store struct {
	mu           sync.Mutex
	cur          state
	commits      int
	rollbacks    int
	reads        int
	trackedReads int
	commitErr    error
}

// New returns an empty Store.
func New() *Store {
	return &Store{cur: newState()}
}

var _ academytx.Runner = (*Store)(nil)

// WithTx runs fn against a copy of the committed state. Units of work are serialized.
// Only a unit of work that staged a write is committed and counted.
func (s *Store) WithTx(ctx context.Context, fn func(tx academytx.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	tx := &txRepo{st: s.cur.clone(), store: s}
	if err := fn(tx); err != nil {
		s.rollbacks++
		return err
	}
	if !tx.dirty {
		return nil
	}
	if s.commitErr != nil {
		err := s.commitErr
		s.commitErr = nil
		s.rollbacks++
		return fmt.Errorf("commit tx: %w", err)
	}
	s.cur = tx.st
	s.commits++
	return nil
}

// WithReadTx runs fn against a snapshot of the committed state and discards it.
func (s *Store) WithReadTx(ctx context.Context, fn func(tx academytx.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	s.reads++
	return fn(&txRepo{st: s.cur.clone(), store: s, readOnly: true})
}

// FailNextCommit makes the next commit fail with err; the unit of work is discarded.
func (s *Store) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// Reads returns the number of read-only units of work.
func (s *Store) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Commits returns the number of units of work that persisted a write.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Rollbacks returns the number of discarded units of work.
func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// TrackedReads returns how many reads asked for change tracking.
func (s *Store) TrackedReads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackedReads
}

// AddTeacher inserts a teacher directly, bypassing units of work.
func (s *Store) AddTeacher(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.seq++
	s.cur.teachers[s.cur.seq] = name
	return s.cur.seq
}

// AddStudent inserts a student directly.
func (s *Store) AddStudent(firstName, lastName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.seq++
	s.cur.students[s.cur.seq] = studentRow{firstName: firstName, lastName: lastName}
	return s.cur.seq
}

// AddCourse inserts a course directly; teacherID may be nil.
func (s *Store) AddCourse(title string, teacherID *int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.seq++
	s.cur.courses[s.cur.seq] = courseRow{title: title, teacherID: teacherID}
	return s.cur.seq
}

// Enroll links a student and a course directly.
func (s *Store) Enroll(studentID, courseID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.enrollments[domain.Enrollment{StudentID: studentID, CourseID: courseID}] = struct{}{}
}

// Enrollments returns the committed enrollment set ordered by student then course.
func (s *Store) Enrollments() []domain.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Enrollment, 0, len(s.cur.enrollments))
	for e := range s.cur.enrollments {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out
}

// CourseTeacher returns the committed teacher id of a course.
func (s *Store) CourseTeacher(courseID int64) *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.courses[courseID].teacherID
}

// CourseTitle returns the committed title of a course.
func (s *Store) CourseTitle(courseID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.courses[courseID].title
}

// TeacherName returns the committed name of a teacher.
func (s *Store) TeacherName(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.teachers[id]
}

// StudentName returns the committed first and last name of a student.
func (s *Store) StudentName(id int64) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.cur.students[id]
	return row.firstName, row.lastName
}

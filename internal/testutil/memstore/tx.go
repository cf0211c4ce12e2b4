package memstore

import (
	"context"
	"fmt"
	"sort"

	"academy-service/internal/apperr"
	"academy-service/internal/domain"
	"academy-service/internal/ports/academytx"
)

type txRepo struct {
	st       state
	store    *Store
	readOnly bool
	dirty    bool
}

var _ academytx.Repository = (*txRepo)(nil)

func (r *txRepo) track(opts academytx.FetchOptions) error {
	if !opts.TrackChanges {
		return nil
	}
	if r.readOnly {
		return fmt.Errorf("locking read: %w", ErrReadOnly)
	}
	r.store.trackedReads++
	return nil
}

// write marks the unit of work as having staged a change.
func (r *txRepo) write(op string) error {
	if r.readOnly {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	r.dirty = true
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (r *txRepo) courseSummary(id int64) domain.Course {
	row := r.st.courses[id]
	return domain.Course{ID: id, Title: row.title, TeacherID: row.teacherID}
}

func (r *txRepo) GetTeacher(_ context.Context, id int64, opts academytx.FetchOptions) (*domain.Teacher, error) {
	if err := r.track(opts); err != nil {
		return nil, err
	}
	name, ok := r.st.teachers[id]
	if !ok {
		return nil, nil
	}
	t := &domain.Teacher{ID: id, Name: name}
	if opts.IncludeRelated {
		t.Courses = []domain.Course{}
		for _, cid := range sortedKeys(r.st.courses) {
			if tid := r.st.courses[cid].teacherID; tid != nil && *tid == id {
				t.Courses = append(t.Courses, r.courseSummary(cid))
			}
		}
	}
	return t, nil
}

func (r *txRepo) ListTeachers(context.Context) ([]domain.Teacher, error) {
	out := make([]domain.Teacher, 0, len(r.st.teachers))
	for _, id := range sortedKeys(r.st.teachers) {
		out = append(out, domain.Teacher{ID: id, Name: r.st.teachers[id]})
	}
	return out, nil
}

func (r *txRepo) InsertTeacher(_ context.Context, t *domain.Teacher) error {
	if err := r.write("insert teacher"); err != nil {
		return err
	}
	r.st.seq++
	t.ID = r.st.seq
	r.st.teachers[t.ID] = t.Name
	return nil
}

func (r *txRepo) UpdateTeacher(_ context.Context, t *domain.Teacher) error {
	if err := r.write("update teacher"); err != nil {
		return err
	}
	if _, ok := r.st.teachers[t.ID]; !ok {
		return fmt.Errorf("update teacher %d: %w", t.ID, apperr.ErrNotFound)
	}
	r.st.teachers[t.ID] = t.Name
	return nil
}

func (r *txRepo) DeleteTeacher(_ context.Context, id int64) error {
	if err := r.write("delete teacher"); err != nil {
		return err
	}
	if _, ok := r.st.teachers[id]; !ok {
		return fmt.Errorf("delete teacher %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.st.teachers, id)
	for cid, row := range r.st.courses {
		if row.teacherID != nil && *row.teacherID == id {
			row.teacherID = nil
			r.st.courses[cid] = row
		}
	}
	return nil
}

func (r *txRepo) GetStudent(_ context.Context, id int64, opts academytx.FetchOptions) (*domain.Student, error) {
	if err := r.track(opts); err != nil {
		return nil, err
	}
	row, ok := r.st.students[id]
	if !ok {
		return nil, nil
	}
	s := &domain.Student{ID: id, FirstName: row.firstName, LastName: row.lastName}
	if opts.IncludeRelated {
		s.Courses = []domain.Course{}
		for _, cid := range sortedKeys(r.st.courses) {
			if _, ok := r.st.enrollments[domain.Enrollment{StudentID: id, CourseID: cid}]; ok {
				s.Courses = append(s.Courses, r.courseSummary(cid))
			}
		}
	}
	return s, nil
}

func (r *txRepo) ListStudents(context.Context) ([]domain.Student, error) {
	out := make([]domain.Student, 0, len(r.st.students))
	for _, id := range sortedKeys(r.st.students) {
		row := r.st.students[id]
		out = append(out, domain.Student{ID: id, FirstName: row.firstName, LastName: row.lastName})
	}
	return out, nil
}

func (r *txRepo) InsertStudent(_ context.Context, s *domain.Student) error {
	if err := r.write("insert student"); err != nil {
		return err
	}
	r.st.seq++
	s.ID = r.st.seq
	r.st.students[s.ID] = studentRow{firstName: s.FirstName, lastName: s.LastName}
	return nil
}

func (r *txRepo) UpdateStudent(_ context.Context, s *domain.Student) error {
	if err := r.write("update student"); err != nil {
		return err
	}
	if _, ok := r.st.students[s.ID]; !ok {
		return fmt.Errorf("update student %d: %w", s.ID, apperr.ErrNotFound)
	}
	r.st.students[s.ID] = studentRow{firstName: s.FirstName, lastName: s.LastName}
	return nil
}

func (r *txRepo) DeleteStudent(_ context.Context, id int64) error {
	if err := r.write("delete student"); err != nil {
		return err
	}
	if _, ok := r.st.students[id]; !ok {
		return fmt.Errorf("delete student %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.st.students, id)
	for e := range r.st.enrollments {
		if e.StudentID == id {
			delete(r.st.enrollments, e)
		}
	}
	return nil
}

func (r *txRepo) GetCourse(_ context.Context, id int64, opts academytx.FetchOptions) (*domain.Course, error) {
	if err := r.track(opts); err != nil {
		return nil, err
	}
	if _, ok := r.st.courses[id]; !ok {
		return nil, nil
	}
	c := r.courseSummary(id)
	if opts.IncludeRelated {
		if c.TeacherID != nil {
			if name, ok := r.st.teachers[*c.TeacherID]; ok {
				c.Teacher = &domain.Teacher{ID: *c.TeacherID, Name: name}
			}
		}
		c.Students = []domain.Student{}
		for _, sid := range sortedKeys(r.st.students) {
			if _, ok := r.st.enrollments[domain.Enrollment{StudentID: sid, CourseID: id}]; ok {
				row := r.st.students[sid]
				c.Students = append(c.Students, domain.Student{ID: sid, FirstName: row.firstName, LastName: row.lastName})
			}
		}
	}
	return &c, nil
}

func (r *txRepo) ListCourses(context.Context) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(r.st.courses))
	for _, id := range sortedKeys(r.st.courses) {
		out = append(out, r.courseSummary(id))
	}
	return out, nil
}

func (r *txRepo) checkTeacherRef(teacherID *int64) error {
	if teacherID == nil {
		return nil
	}
	if _, ok := r.st.teachers[*teacherID]; !ok {
		return fmt.Errorf("teacher %d: foreign key violation", *teacherID)
	}
	return nil
}

func (r *txRepo) InsertCourse(_ context.Context, c *domain.Course) error {
	if err := r.write("insert course"); err != nil {
		return err
	}
	if err := r.checkTeacherRef(c.TeacherID); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	r.st.seq++
	c.ID = r.st.seq
	r.st.courses[c.ID] = courseRow{title: c.Title, teacherID: copyID(c.TeacherID)}
	return nil
}

func (r *txRepo) UpdateCourse(_ context.Context, c *domain.Course) error {
	if err := r.write("update course"); err != nil {
		return err
	}
	if _, ok := r.st.courses[c.ID]; !ok {
		return fmt.Errorf("update course %d: %w", c.ID, apperr.ErrNotFound)
	}
	if err := r.checkTeacherRef(c.TeacherID); err != nil {
		return fmt.Errorf("update course %d: %w", c.ID, err)
	}
	r.st.courses[c.ID] = courseRow{title: c.Title, teacherID: copyID(c.TeacherID)}
	return nil
}

func (r *txRepo) DeleteCourse(_ context.Context, id int64) error {
	if err := r.write("delete course"); err != nil {
		return err
	}
	if _, ok := r.st.courses[id]; !ok {
		return fmt.Errorf("delete course %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.st.courses, id)
	for e := range r.st.enrollments {
		if e.CourseID == id {
			delete(r.st.enrollments, e)
		}
	}
	return nil
}

func (r *txRepo) InsertEnrollment(_ context.Context, e domain.Enrollment) error {
	if err := r.write("insert enrollment"); err != nil {
		return err
	}
	if _, ok := r.st.students[e.StudentID]; !ok {
		return fmt.Errorf("insert enrollment: student %d: foreign key violation", e.StudentID)
	}
	if _, ok := r.st.courses[e.CourseID]; !ok {
		return fmt.Errorf("insert enrollment: course %d: foreign key violation", e.CourseID)
	}
	if _, ok := r.st.enrollments[e]; ok {
		return apperr.StudentCourseAlreadyConnected(e.StudentID, e.CourseID)
	}
	r.st.enrollments[e] = struct{}{}
	return nil
}

func (r *txRepo) DeleteEnrollment(_ context.Context, e domain.Enrollment) error {
	if err := r.write("delete enrollment"); err != nil {
		return err
	}
	if _, ok := r.st.enrollments[e]; !ok {
		return fmt.Errorf("delete enrollment (%d,%d): %w", e.StudentID, e.CourseID, apperr.ErrNotFound)
	}
	delete(r.st.enrollments, e)
	return nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

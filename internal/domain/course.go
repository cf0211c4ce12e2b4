package domain

// Course is a unit of instruction. TeacherID is the single source of the teacher link;
// Teacher is loaded from it. Students is derived from the enrollment set.
type Course struct {
	ID        int64
	Title     string
	TeacherID *int64
	Teacher   *Teacher
	Students  []Student
}

// NewCourse carries the fields required to create a course.
type NewCourse struct {
	Title string
}

// CourseUpdate carries optional fields to update a course.
type CourseUpdate struct {
	Title *string
}

// Validate checks the creation payload.
func (n NewCourse) Validate() error {
	return validateName("title", n.Title)
}

// Validate checks the fields that are present.
func (u CourseUpdate) Validate() error {
	if u.Title != nil {
		return validateName("title", *u.Title)
	}
	return nil
}

// Empty reports whether the update changes nothing.
func (u CourseUpdate) Empty() bool { return u.Title == nil }

// Apply overlays the present fields onto c and reports whether anything changed.
func (u CourseUpdate) Apply(c *Course) bool {
	if u.Title == nil || *u.Title == c.Title {
		return false
	}
	c.Title = *u.Title
	return true
}

// TaughtBy reports whether the course is assigned to teacherID.
func (c *Course) TaughtBy(teacherID int64) bool {
	return c.TeacherID != nil && *c.TeacherID == teacherID
}

// HasStudent reports whether studentID is among the course's loaded students.
func (c *Course) HasStudent(studentID int64) bool {
	for _, s := range c.Students {
		if s.ID == studentID {
			return true
		}
	}
	return false
}

// AssignTeacher points the course at t.
func (c *Course) AssignTeacher(t *Teacher) {
	id := t.ID
	c.TeacherID = &id
	c.Teacher = &Teacher{ID: t.ID, Name: t.Name}
}

// ClearTeacher detaches the course from its teacher.
func (c *Course) ClearTeacher() {
	c.TeacherID = nil
	c.Teacher = nil
}

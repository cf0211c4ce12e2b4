package domain

// Teacher is an instructor. Courses is derived from the courses whose TeacherID points at the teacher.
type Teacher struct {
	ID      int64
	Name    string
	Courses []Course
}

// NewTeacher carries the fields required to create a teacher.
type NewTeacher struct {
	Name string
}

// TeacherUpdate carries optional fields to update a teacher.
// A nil field means “do not change” that attribute.
type TeacherUpdate struct {
	Name *string
}

// Validate checks the creation payload.
func (n NewTeacher) Validate() error {
	return validateName("name", n.Name)
}

// Validate checks the fields that are present.
func (u TeacherUpdate) Validate() error {
	if u.Name != nil {
		return validateName("name", *u.Name)
	}
	return nil
}

// Empty reports whether the update changes nothing.
func (u TeacherUpdate) Empty() bool { return u.Name == nil }

// Apply overlays the present fields onto t and reports whether anything changed.
func (u TeacherUpdate) Apply(t *Teacher) bool {
	if u.Name == nil || *u.Name == t.Name {
		return false
	}
	t.Name = *u.Name
	return true
}
